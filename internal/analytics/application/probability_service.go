package application

import (
	"errors"

	"preprocess/internal/analytics/domain"
	sessionsdomain "preprocess/internal/sessions/domain"
)

// ProbabilityEstimator estime une probabilité d'achat empirique par session:
// table de fréquences sur les caractéristiques discrétisées, pas un modèle
// ajusté
type ProbabilityEstimator struct{}

// NewProbabilityEstimator crée une nouvelle instance de ProbabilityEstimator
func NewProbabilityEstimator() *ProbabilityEstimator {
	return &ProbabilityEstimator{}
}

// Estimate affecte à chaque session la fréquence de succès de son bucket
// Première passe: accumulation (effectif, succès) par clé discrétisée.
// Seconde passe: affectation de la probabilité sur la table originale, non
// discrétisée. La table de buckets est retournée pour diagnostic puis jetée
func (e *ProbabilityEstimator) Estimate(features []*sessionsdomain.SessionFeatures) (*domain.BucketTable, error) {
	if len(features) == 0 {
		return nil, errors.New("cannot estimate probabilities without sessions")
	}

	table := domain.NewBucketTable()
	for _, sf := range features {
		table.Observe(domain.KeyFor(sf), sf.Success())
	}

	for _, sf := range features {
		sf.SetProbability(table.Probability(domain.KeyFor(sf)))
	}

	return table, nil
}
