package domain

import (
	"fmt"
	"strconv"

	sessionsdomain "preprocess/internal/sessions/domain"
)

// SessionOutputRow représente une ligne de la table finale: une session
// survivante, indexée par son identifiant. Le drapeau success a disparu,
// remplacé par la probabilité estimée
type SessionOutputRow struct {
	SessionID            int64   `parquet:"name=id, type=INT64"`
	Duration             float64 `parquet:"name=duration, type=DOUBLE"`
	AvgPrice             float64 `parquet:"name=avg_price, type=DOUBLE"`
	AvgDiscountPercent   float64 `parquet:"name=avg_discount_percent, type=DOUBLE"`
	TotalDiscountPercent float64 `parquet:"name=total_discount_percent, type=DOUBLE"`
	AvgDiscountValue     float64 `parquet:"name=avg_discount_value, type=DOUBLE"`
	TotalDiscountValue   float64 `parquet:"name=total_discount_value, type=DOUBLE"`
	Probability          float64 `parquet:"name=probability, type=DOUBLE"`
}

// NewSessionOutputRow construit une ligne de sortie depuis un vecteur de
// caractéristiques. La probabilité doit avoir été affectée par l'estimateur
func NewSessionOutputRow(sf *sessionsdomain.SessionFeatures) (*SessionOutputRow, error) {
	probability, assigned := sf.Probability()
	if !assigned {
		return nil, fmt.Errorf("session %d has no estimated probability", sf.SessionID())
	}

	return &SessionOutputRow{
		SessionID:            int64(sf.SessionID()),
		Duration:             sf.Duration(),
		AvgPrice:             sf.AvgPrice(),
		AvgDiscountPercent:   sf.AvgDiscountPercent(),
		TotalDiscountPercent: sf.TotalDiscountPercent(),
		AvgDiscountValue:     sf.AvgDiscountValue(),
		TotalDiscountValue:   sf.TotalDiscountValue(),
		Probability:          probability,
	}, nil
}

// ToCSVRow convertit en tableau pour CSV
// Formatage flottant au plus court sans perte: la sortie est reproductible à
// l'octet près d'un run à l'autre
func (row *SessionOutputRow) ToCSVRow() []string {
	return []string{
		strconv.FormatInt(row.SessionID, 10),
		FormatFloat(row.Duration),
		FormatFloat(row.AvgPrice),
		FormatFloat(row.AvgDiscountPercent),
		FormatFloat(row.TotalDiscountPercent),
		FormatFloat(row.AvgDiscountValue),
		FormatFloat(row.TotalDiscountValue),
		FormatFloat(row.Probability),
	}
}

// CSVHeaders retourne les en-têtes CSV de la table finale
func CSVHeaders() []string {
	return []string{
		"id",
		"duration",
		"avg_price",
		"avg_discount_percent",
		"total_discount_percent",
		"avg_discount_value",
		"total_discount_value",
		"probability",
	}
}

// FormatFloat formate un flottant au plus court sans perte d'information
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
