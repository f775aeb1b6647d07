package application

import (
	"testing"

	"preprocess/internal/analytics/domain"
	sessionsdomain "preprocess/internal/sessions/domain"
)

// features fabrique un vecteur de session minimal pour l'estimateur
func features(id int64, duration float64, success bool) *sessionsdomain.SessionFeatures {
	return sessionsdomain.NewSessionFeatures(
		sessionsdomain.SessionID(id), duration, 120, 0.15, 0.3, 18, 36, success)
}

// TestEstimate vérifie que les sessions d'un même bucket partagent la même
// fréquence empirique
func TestEstimate(t *testing.T) {
	// Trois sessions discrétisées identiquement (durées du même ordre de
	// grandeur), une quatrième dans un bucket distinct
	input := []*sessionsdomain.SessionFeatures{
		features(1, 40, true),
		features(2, 50, false),
		features(3, 60, true),
		features(4, 400, true),
	}

	table, err := NewProbabilityEstimator().Estimate(input)
	if err != nil {
		t.Fatal(err)
	}
	if table.Size() != 2 {
		t.Errorf("Size() = %d buckets, attendu 2", table.Size())
	}

	for _, id := range []int{0, 1, 2} {
		p, ok := input[id].Probability()
		if !ok {
			t.Fatalf("session %d sans probabilité", input[id].SessionID())
		}
		if p != 2.0/3.0 {
			t.Errorf("session %d: probabilité %v, attendu %v", input[id].SessionID(), p, 2.0/3.0)
		}
	}

	// Bucket singleton entièrement en succès
	if p, _ := input[3].Probability(); p != 1 {
		t.Errorf("session 4: probabilité %v, attendu exactement 1", p)
	}
}

// TestEstimateBounds vérifie que toute probabilité affectée reste dans [0, 1]
func TestEstimateBounds(t *testing.T) {
	input := []*sessionsdomain.SessionFeatures{
		features(1, 40, true),
		features(2, 45, true),
		features(3, 500, false),
		features(4, 0, false),
	}

	if _, err := NewProbabilityEstimator().Estimate(input); err != nil {
		t.Fatal(err)
	}

	for _, sf := range input {
		p, ok := sf.Probability()
		if !ok {
			t.Fatalf("session %d sans probabilité", sf.SessionID())
		}
		if p < 0 || p > 1 {
			t.Errorf("session %d: probabilité %v hors [0, 1]", sf.SessionID(), p)
		}
	}
}

// TestEstimateEmptyInput vérifie le rejet d'une table sans sessions
func TestEstimateEmptyInput(t *testing.T) {
	if _, err := NewProbabilityEstimator().Estimate(nil); err == nil {
		t.Error("erreur attendue, obtenu nil")
	}
}

// TestEstimateKeyUsesDiscretizedValues vérifie que le regroupement se fait
// sur les valeurs discrétisées et non sur les valeurs brutes
func TestEstimateKeyUsesDiscretizedValues(t *testing.T) {
	a := features(1, 40, true)
	b := features(2, 55, true)

	if domain.KeyFor(a) != domain.KeyFor(b) {
		t.Fatal("40 et 55 devraient tomber dans le même ordre de grandeur")
	}

	table, err := NewProbabilityEstimator().Estimate([]*sessionsdomain.SessionFeatures{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if table.Size() != 1 {
		t.Errorf("Size() = %d, attendu 1", table.Size())
	}
}
