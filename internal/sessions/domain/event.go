package domain

import (
	"time"

	catalogdomain "preprocess/internal/catalog/domain"
	"preprocess/internal/shared/domain"
)

// SessionID représente l'identifiant unique d'une session
type SessionID int64

// EventType représente le type d'un évènement de session
type EventType string

const (
	EventTypeViewProduct EventType = "VIEW_PRODUCT"
	EventTypeBuyProduct  EventType = "BUY_PRODUCT"
)

// IsPurchase vérifie si l'évènement est le marqueur d'achat
func (et EventType) IsPurchase() bool {
	return et == EventTypeBuyProduct
}

// Event représente un évènement horodaté d'une session de navigation
type Event struct {
	sessionID SessionID
	userID    catalogdomain.UserID
	productID catalogdomain.ProductID
	timestamp time.Time
	eventType EventType
	discount  domain.Discount
}

// NewEvent crée un nouvel évènement de session
// Les ids doivent être présents (lignes à id manquant écartées en amont),
// mais leur valeur passe telle quelle: la cohérence avec le catalogue est
// tranchée à l'agrégation. Une remise hors [0, 1] est une erreur (le
// pipeline échoue bruyamment plutôt que de produire des statistiques fausses)
func NewEvent(
	sessionID SessionID,
	userID catalogdomain.UserID,
	productID catalogdomain.ProductID,
	timestamp time.Time,
	eventType EventType,
	offeredDiscount float64,
) (*Event, error) {
	discount, err := domain.NewDiscount(offeredDiscount)
	if err != nil {
		return nil, err
	}

	return &Event{
		sessionID: sessionID,
		userID:    userID,
		productID: productID,
		timestamp: timestamp,
		eventType: eventType,
		discount:  discount,
	}, nil
}

// SessionID retourne l'identifiant de session
func (e *Event) SessionID() SessionID {
	return e.sessionID
}

// UserID retourne l'identifiant de l'utilisateur
func (e *Event) UserID() catalogdomain.UserID {
	return e.userID
}

// ProductID retourne l'identifiant du produit référencé
func (e *Event) ProductID() catalogdomain.ProductID {
	return e.productID
}

// Timestamp retourne l'horodatage de l'évènement
func (e *Event) Timestamp() time.Time {
	return e.timestamp
}

// EventType retourne le type de l'évènement
func (e *Event) EventType() EventType {
	return e.eventType
}

// Discount retourne la remise offerte sur cet évènement
func (e *Event) Discount() domain.Discount {
	return e.discount
}
