package domain

import (
	"testing"

	sessionsdomain "preprocess/internal/sessions/domain"
)

// TestSimplify vérifie la discrétisation en ordres de grandeur
func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"unité", 1, 0},
		{"dizaines", 42, 1},
		{"centaines", 250, 2},
		{"sous l'unité", 0.05, -2},
		{"zéro inchangé", 0, 0},
		{"négatif inchangé", -3.5, -3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simplify(tt.v); got != tt.want {
				t.Errorf("Simplify(%v) = %v, attendu %v", tt.v, got, tt.want)
			}
		})
	}
}

// TestKeyFor vérifie que la clé de bucket reprend les six colonnes dans
// l'ordre de sortie, discrétisées
func TestKeyFor(t *testing.T) {
	sf := sessionsdomain.NewSessionFeatures(1, 90, 120, 0.15, 0.3, 18, 36, true)

	got := KeyFor(sf)
	want := BucketKey{1, 2, -1, -1, 1, 1}
	if got != want {
		t.Errorf("KeyFor = %v, attendu %v", got, want)
	}
}

// TestBucketTable vérifie l'accumulation et la fréquence empirique
func TestBucketTable(t *testing.T) {
	table := NewBucketTable()
	keyA := BucketKey{1, 2, 0, 0, 1, 1}
	keyB := BucketKey{0, 0, 0, 0, 0, 0}

	table.Observe(keyA, true)
	table.Observe(keyA, false)
	table.Observe(keyA, true)
	table.Observe(keyB, false)

	if table.Size() != 2 {
		t.Errorf("Size() = %d, attendu 2", table.Size())
	}
	if got := table.Probability(keyA); got != 2.0/3.0 {
		t.Errorf("Probability(keyA) = %v, attendu %v", got, 2.0/3.0)
	}
	if got := table.Probability(keyB); got != 0 {
		t.Errorf("Probability(keyB) = %v, attendu 0", got)
	}
}

// TestBucketStatsExtremes vérifie les buckets entièrement en succès ou échec
func TestBucketStatsExtremes(t *testing.T) {
	allSuccess := &BucketStats{}
	allSuccess.Observe(true)
	allSuccess.Observe(true)
	if got := allSuccess.Probability(); got != 1 {
		t.Errorf("Probability = %v, attendu exactement 1", got)
	}

	allFailure := &BucketStats{}
	allFailure.Observe(false)
	if got := allFailure.Probability(); got != 0 {
		t.Errorf("Probability = %v, attendu exactement 0", got)
	}
}
