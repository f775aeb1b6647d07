package application

import (
	"preprocess/database"
	"preprocess/internal/catalog/domain"
)

// SanitizeResult résultat de l'assainissement du catalogue
type SanitizeResult struct {
	products []*domain.Product
	removed  map[domain.ProductID]struct{}
}

// Products retourne les produits survivants, dans l'ordre d'entrée
func (r *SanitizeResult) Products() []*domain.Product {
	return r.products
}

// Removed retourne l'ensemble des identifiants écartés
// Cet ensemble se propage aux sessions: toute ligne référençant un de ces
// identifiants est écartée en aval
func (r *SanitizeResult) Removed() map[domain.ProductID]struct{} {
	return r.removed
}

// RemovedCount retourne le nombre de produits écartés
func (r *SanitizeResult) RemovedCount() int {
	return len(r.removed)
}

// IsRemoved vérifie si un identifiant a été écarté
func (r *SanitizeResult) IsRemoved(id domain.ProductID) bool {
	_, ok := r.removed[id]
	return ok
}

// ProductSanitizer assainit le catalogue brut
// Défauts niveau ligne (écart silencieux): prix hors (0, 1000000], nom
// contenant '#', ';' ou '&'
type ProductSanitizer struct{}

// NewProductSanitizer crée une nouvelle instance de ProductSanitizer
func NewProductSanitizer() *ProductSanitizer {
	return &ProductSanitizer{}
}

// Sanitize filtre les enregistrements bruts et construit le catalogue valide
func (s *ProductSanitizer) Sanitize(records []database.ProductRecord) *SanitizeResult {
	result := &SanitizeResult{
		products: make([]*domain.Product, 0, len(records)),
		removed:  make(map[domain.ProductID]struct{}),
	}

	for _, rec := range records {
		id := domain.ProductID(rec.ProductID)
		product, err := domain.NewProduct(id, rec.ProductName, rec.Price, rec.CategoryPath)
		if err != nil {
			result.removed[id] = struct{}{}
			continue
		}
		result.products = append(result.products, product)
	}

	return result
}
