package domain

import (
	"fmt"
	"sort"
	"strings"
)

// MissingWeightError erreur de configuration: des catégories observées dans
// les données n'ont pas de pondération définie. Le scoring étant indéfini
// sans pondération, cette erreur est fatale
type MissingWeightError struct {
	Categories []string
}

// Error décrit les catégories sans pondération
func (e *MissingWeightError) Error() string {
	return fmt.Sprintf("no weight defined for observed categories: %s",
		strings.Join(e.Categories, ", "))
}

// CategoryUniverse représente l'univers des catégories observées sur les
// produits survivants: noms triés, pondérations et index inversé
// catégorie -> produits membres (l'appartenance par colonnes booléennes de
// la source est remplacée par un ensemble par produit plus cet index)
type CategoryUniverse struct {
	names   []string
	weights map[string]float64
	members map[string][]*Product
}

// NewCategoryUniverse construit l'univers des catégories avec validation
// Chaque catégorie observée doit avoir une pondération, sinon l'erreur de
// configuration MissingWeightError est retournée
func NewCategoryUniverse(products []*Product, weights map[string]float64) (*CategoryUniverse, error) {
	members := make(map[string][]*Product)
	for _, p := range products {
		for _, c := range p.Categories() {
			members[c] = append(members[c], p)
		}
	}

	names := make([]string, 0, len(members))
	var missing []string
	for name := range members {
		names = append(names, name)
		if _, ok := weights[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(names)

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingWeightError{Categories: missing}
	}

	return &CategoryUniverse{
		names:   names,
		weights: weights,
		members: members,
	}, nil
}

// Categories retourne les noms de catégories triés
func (u *CategoryUniverse) Categories() []string {
	return append([]string{}, u.names...)
}

// Size retourne le nombre de catégories distinctes
func (u *CategoryUniverse) Size() int {
	return len(u.names)
}

// Weight retourne la pondération d'une catégorie
// L'existence est garantie par la validation du constructeur
func (u *CategoryUniverse) Weight(name string) float64 {
	return u.weights[name]
}

// Members retourne les produits membres d'une catégorie
func (u *CategoryUniverse) Members(name string) []*Product {
	return u.members[name]
}

// DistinctSignatures énumère les combinaisons de catégories réellement
// observées: les produits sont partitionnés par leur signature d'appartenance
// et le chemin du premier membre de chaque groupe est retourné, trié.
// Diagnostic de validation uniquement, sans effet sur le scoring
func (u *CategoryUniverse) DistinctSignatures(products []*Product) []string {
	seen := make(map[string]string)
	for _, p := range products {
		var sb strings.Builder
		for _, name := range u.names {
			if p.HasCategory(name) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sig := sb.String()
		if _, ok := seen[sig]; !ok {
			seen[sig] = strings.Join(p.CategoryPath(), CategoryPathSeparator)
		}
	}

	lines := make([]string, 0, len(seen))
	for _, line := range seen {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}
