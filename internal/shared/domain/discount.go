package domain

import (
	"errors"
	"fmt"
)

// Discount représente une remise exprimée en fraction de prix
type Discount struct {
	fraction float64
}

// NewDiscount crée une nouvelle instance de Discount avec validation
// Invariant: fraction dans [0, 1]
func NewDiscount(fraction float64) (Discount, error) {
	if fraction < 0 || fraction > 1 {
		return Discount{}, errors.New("discount fraction must be in [0, 1]")
	}
	return Discount{fraction: fraction}, nil
}

// MustNewDiscount crée un Discount en paniquant si invalide
func MustNewDiscount(fraction float64) Discount {
	d, err := NewDiscount(fraction)
	if err != nil {
		panic(fmt.Sprintf("invalid discount: %v", err))
	}
	return d
}

// Fraction retourne la fraction de remise
func (d Discount) Fraction() float64 {
	return d.fraction
}

// ValueOn retourne le montant de la remise appliquée à un prix
func (d Discount) ValueOn(price Price) float64 {
	return price.Amount() * d.fraction
}
