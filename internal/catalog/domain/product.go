package domain

import (
	"fmt"
	"strings"

	"preprocess/internal/shared/domain"
)

// ProductID représente l'identifiant unique d'un produit
type ProductID int64

// CategoryPathSeparator séparateur des segments de category_path
const CategoryPathSeparator = ";"

// forbiddenNameChars caractères interdits dans un nom de produit
const forbiddenNameChars = "#;&"

// Product représente un produit du catalogue assaini
type Product struct {
	id           ProductID
	name         string
	price        domain.Price
	categoryPath []string
	categories   map[string]struct{}
	hotness      *float64
}

// NewProduct crée une nouvelle instance de Product avec validation
// Les règles de validation sont exactement celles du sanitizer: prix dans
// (0, 1000000], nom sans '#', ';' ni '&'. Un nom vide passe, comme un
// category_path vide ou malformé: l'appartenance aux catégories dégénère
// alors en ensemble vide
func NewProduct(id ProductID, name string, price float64, categoryPath string) (*Product, error) {
	if strings.ContainsAny(name, forbiddenNameChars) {
		return nil, fmt.Errorf("product name %q contains a forbidden character", name)
	}

	p, err := domain.NewPrice(price)
	if err != nil {
		return nil, err
	}

	path := splitCategoryPath(categoryPath)
	categories := make(map[string]struct{}, len(path))
	for _, c := range path {
		categories[c] = struct{}{}
	}

	return &Product{
		id:           id,
		name:         name,
		price:        p,
		categoryPath: path,
		categories:   categories,
	}, nil
}

// splitCategoryPath découpe un category_path en segments ordonnés
// Les segments vides sont écartés (chemin malformé toléré)
func splitCategoryPath(raw string) []string {
	if raw == "" {
		return nil
	}
	segments := strings.Split(raw, CategoryPathSeparator)
	path := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			path = append(path, s)
		}
	}
	return path
}

// ID retourne l'identifiant du produit
func (p *Product) ID() ProductID {
	return p.id
}

// Name retourne le nom du produit
func (p *Product) Name() string {
	return p.name
}

// Price retourne le prix du produit
func (p *Product) Price() domain.Price {
	return p.price
}

// CategoryPath retourne la séquence ordonnée des catégories
func (p *Product) CategoryPath() []string {
	return append([]string{}, p.categoryPath...)
}

// Categories retourne les catégories distinctes du produit, dans l'ordre du
// chemin (un chemin peut répéter un segment, l'appartenance est un ensemble)
func (p *Product) Categories() []string {
	distinct := make([]string, 0, len(p.categories))
	seen := make(map[string]struct{}, len(p.categories))
	for _, c := range p.categoryPath {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		distinct = append(distinct, c)
	}
	return distinct
}

// HasCategory vérifie si le produit appartient à une catégorie
// L'appartenance couvre tout le chemin, pas seulement la feuille
func (p *Product) HasCategory(name string) bool {
	_, ok := p.categories[name]
	return ok
}

// CategoryCount retourne le nombre de catégories distinctes du produit
func (p *Product) CategoryCount() int {
	return len(p.categories)
}

// Hotness retourne le score hotness et un indicateur de calcul effectué
func (p *Product) Hotness() (float64, bool) {
	if p.hotness == nil {
		return 0, false
	}
	return *p.hotness, true
}

// SetHotness affecte le score hotness calculé
func (p *Product) SetHotness(score float64) {
	p.hotness = &score
}
