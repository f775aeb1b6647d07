package domain

import (
	"errors"
	"fmt"
)

// MaxPrice borne supérieure autorisée pour un prix catalogue
const MaxPrice = 1_000_000.0

// Price représente un prix catalogue avec garanties d'invariants
type Price struct {
	amount float64
}

// NewPrice crée une nouvelle instance de Price avec validation
// Invariant: 0 < amount <= MaxPrice (la borne est inclusive)
func NewPrice(amount float64) (Price, error) {
	if amount <= 0 {
		return Price{}, errors.New("price must be strictly positive")
	}
	if amount > MaxPrice {
		return Price{}, fmt.Errorf("price exceeds maximum allowed value %.0f", MaxPrice)
	}
	return Price{amount: amount}, nil
}

// MustNewPrice crée un Price en paniquant si invalide (fixtures et tests)
func MustNewPrice(amount float64) Price {
	p, err := NewPrice(amount)
	if err != nil {
		panic(fmt.Sprintf("invalid price: %v", err))
	}
	return p
}

// Amount retourne le montant
func (p Price) Amount() float64 {
	return p.amount
}

// Sub retourne la différence de prix (peut être négative)
func (p Price) Sub(other Price) float64 {
	return p.amount - other.amount
}

// IsZero vérifie si le prix est nul (valeur zéro non initialisée)
func (p Price) IsZero() bool {
	return p.amount == 0
}
