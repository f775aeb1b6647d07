package application

import (
	"fmt"
	"sort"

	"preprocess/database"
	catalogdomain "preprocess/internal/catalog/domain"
	"preprocess/internal/sessions/domain"
	shareddomain "preprocess/internal/shared/domain"
)

// UnknownProductError erreur d'intégrité des données: une session référence
// un produit qui a survécu à l'assainissement mais est introuvable dans le
// catalogue. Jamais avalée silencieusement, elle interrompt le run
type UnknownProductError struct {
	SessionID domain.SessionID
	ProductID catalogdomain.ProductID
}

// Error identifie la session et le produit fautifs
func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("session %d references unknown product %d", e.SessionID, e.ProductID)
}

// CleanReport compte les lignes écartées pendant le nettoyage
type CleanReport struct {
	DroppedMissingID      int
	DroppedRemovedProduct int
}

// SessionAggregator réduit les évènements bruts en un vecteur de
// caractéristiques par session
type SessionAggregator struct {
	products map[catalogdomain.ProductID]*catalogdomain.Product
}

// NewSessionAggregator crée un agrégateur sur le catalogue assaini
func NewSessionAggregator(products []*catalogdomain.Product) *SessionAggregator {
	index := make(map[catalogdomain.ProductID]*catalogdomain.Product, len(products))
	for _, p := range products {
		index[p.ID()] = p
	}
	return &SessionAggregator{products: index}
}

// CleanEvents filtre les enregistrements bruts et construit les évènements
// Défauts niveau ligne (écart silencieux, comptabilisé): user_id ou
// product_id manquant, référence à un produit écarté par le sanitizer.
// Toute autre ligne invalide est une erreur fatale
func (a *SessionAggregator) CleanEvents(
	records []database.SessionRecord,
	removed map[catalogdomain.ProductID]struct{},
) ([]*domain.Event, *CleanReport, error) {
	events := make([]*domain.Event, 0, len(records))
	report := &CleanReport{}

	for _, rec := range records {
		if !rec.HasUserID() || !rec.HasProductID() {
			report.DroppedMissingID++
			continue
		}

		productID := catalogdomain.ProductID(rec.ProductIDValue())
		if _, gone := removed[productID]; gone {
			report.DroppedRemovedProduct++
			continue
		}

		event, err := domain.NewEvent(
			domain.SessionID(rec.SessionID),
			catalogdomain.UserID(rec.UserIDValue()),
			productID,
			rec.Timestamp.Time,
			domain.EventType(rec.EventType),
			rec.OfferedDiscount,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("session %d: %w", rec.SessionID, err)
		}
		events = append(events, event)
	}

	return events, report, nil
}

// Aggregate groupe les évènements par session et produit exactement un
// vecteur de caractéristiques par groupe
// L'ordre de sortie est l'ordre de première apparition des sessions; dans un
// groupe les évènements sont triés par horodatage (tri stable)
func (a *SessionAggregator) Aggregate(events []*domain.Event) ([]*domain.SessionFeatures, error) {
	groups := make(map[domain.SessionID][]*domain.Event)
	order := make([]domain.SessionID, 0)

	for _, e := range events {
		id := e.SessionID()
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], e)
	}

	features := make([]*domain.SessionFeatures, 0, len(order))
	for _, id := range order {
		sf, err := a.aggregateSession(id, groups[id])
		if err != nil {
			return nil, err
		}
		features = append(features, sf)
	}

	return features, nil
}

// aggregateSession calcule le vecteur de caractéristiques d'une session
func (a *SessionAggregator) aggregateSession(id domain.SessionID, group []*domain.Event) (*domain.SessionFeatures, error) {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Timestamp().Before(group[j].Timestamp())
	})

	first, last := group[0], group[len(group)-1]
	span, err := shareddomain.NewTimeSpan(first.Timestamp(), last.Timestamp())
	if err != nil {
		return nil, fmt.Errorf("session %d: %w", id, err)
	}

	var (
		sumPrice           float64
		sumDiscountPercent float64
		sumDiscountValue   float64
	)

	for _, e := range group {
		product, found := a.products[e.ProductID()]
		if !found {
			return nil, &UnknownProductError{SessionID: id, ProductID: e.ProductID()}
		}

		sumPrice += product.Price().Amount()
		sumDiscountPercent += e.Discount().Fraction()
		sumDiscountValue += e.Discount().ValueOn(product.Price())
	}

	n := float64(len(group))
	return domain.NewSessionFeatures(
		id,
		span.Seconds(),
		sumPrice/n,
		sumDiscountPercent/n,
		sumDiscountPercent,
		sumDiscountValue/n,
		sumDiscountValue,
		last.EventType().IsPurchase(),
	), nil
}
