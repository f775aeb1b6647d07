package domain

import (
	"math"

	sessionsdomain "preprocess/internal/sessions/domain"
)

// Simplify discrétise une caractéristique continue: les valeurs strictement
// positives sont remplacées par floor(log10(v)), les autres restent telles
// quelles. La valeur discrétisée ne sert que de clé de regroupement, elle
// n'est jamais stockée dans la table de caractéristiques
func Simplify(v float64) float64 {
	if v > 0 {
		return math.Floor(math.Log10(v))
	}
	return v
}

// BucketKey clé de regroupement: le 6-uplet des caractéristiques
// discrétisées d'une session
type BucketKey [sessionsdomain.FeatureCount]float64

// KeyFor calcule la clé de bucket d'une session
func KeyFor(sf *sessionsdomain.SessionFeatures) BucketKey {
	var key BucketKey
	for i, v := range sf.Vector() {
		key[i] = Simplify(v)
	}
	return key
}

// BucketStats accumulateur d'un bucket: effectif et succès observés
type BucketStats struct {
	sessions  int
	successes int
}

// Observe comptabilise une session du bucket
func (b *BucketStats) Observe(success bool) {
	b.sessions++
	if success {
		b.successes++
	}
}

// Sessions retourne l'effectif du bucket
func (b *BucketStats) Sessions() int {
	return b.sessions
}

// Successes retourne le nombre de sessions conclues par un achat
func (b *BucketStats) Successes() int {
	return b.successes
}

// Probability retourne la fréquence empirique de succès du bucket
// Un bucket entièrement en échec ou en succès donne exactement 0 ou 1
func (b *BucketStats) Probability() float64 {
	return float64(b.successes) / float64(b.sessions)
}

// BucketTable table transitoire clé de bucket -> accumulateur
// Construite en une passe sur les sessions, consommée en une seconde passe
// d'affectation, puis jetée
type BucketTable struct {
	stats map[BucketKey]*BucketStats
}

// NewBucketTable crée une table de buckets vide
func NewBucketTable() *BucketTable {
	return &BucketTable{
		stats: make(map[BucketKey]*BucketStats),
	}
}

// Observe comptabilise une session dans son bucket
func (t *BucketTable) Observe(key BucketKey, success bool) {
	bucket, ok := t.stats[key]
	if !ok {
		bucket = &BucketStats{}
		t.stats[key] = bucket
	}
	bucket.Observe(success)
}

// Probability retourne la fréquence de succès du bucket d'une clé
// Les clés proviennent de sessions existantes: un bucket vide ne peut pas
// être interrogé par construction
func (t *BucketTable) Probability(key BucketKey) float64 {
	return t.stats[key].Probability()
}

// Size retourne le nombre de buckets distincts
func (t *BucketTable) Size() int {
	return len(t.stats)
}
