package domain

import (
	"errors"
	"math"
)

// CorrelationMatrix matrice de corrélation de Pearson entre colonnes de la
// table finale. Seul le triangle inférieur strict est significatif pour la
// sortie annexe; le reste est porté à NaN
type CorrelationMatrix struct {
	labels []string
	values [][]float64
}

// NewCorrelationMatrix calcule la matrice de corrélation de colonnes de même
// longueur. Une colonne à variance nulle produit NaN, comme la source
func NewCorrelationMatrix(labels []string, columns [][]float64) (*CorrelationMatrix, error) {
	if len(labels) != len(columns) {
		return nil, errors.New("labels and columns must have the same length")
	}
	if len(columns) == 0 {
		return nil, errors.New("correlation requires at least one column")
	}
	n := len(columns[0])
	for _, col := range columns {
		if len(col) != n {
			return nil, errors.New("columns must have equal length")
		}
	}
	if n == 0 {
		return nil, errors.New("correlation requires at least one row")
	}

	values := make([][]float64, len(columns))
	for i := range columns {
		values[i] = make([]float64, len(columns))
		for j := range columns {
			if j < i {
				values[i][j] = pearson(columns[i], columns[j])
			} else {
				values[i][j] = math.NaN()
			}
		}
	}

	return &CorrelationMatrix{labels: labels, values: values}, nil
}

// Labels retourne les noms de colonnes
func (m *CorrelationMatrix) Labels() []string {
	return append([]string{}, m.labels...)
}

// At retourne le coefficient (i, j); NaN hors triangle inférieur strict
func (m *CorrelationMatrix) At(i, j int) float64 {
	return m.values[i][j]
}

// Size retourne la dimension de la matrice
func (m *CorrelationMatrix) Size() int {
	return len(m.labels)
}

// pearson calcule le coefficient de corrélation de Pearson de deux colonnes
func pearson(x, y []float64) float64 {
	n := float64(len(x))

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	denom := math.Sqrt(varX * varY)
	if denom == 0 {
		return math.NaN()
	}
	return cov / denom
}
