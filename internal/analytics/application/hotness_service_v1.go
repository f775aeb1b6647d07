package application

import (
	catalogdomain "preprocess/internal/catalog/domain"
)

// HotnessServiceV1 scorer NON-optimisé (Version 1)
// Reproduit le balayage naïf de la version d'origine: pour chaque produit et
// chaque catégorie possédée, les pairs sont re-parcourus intégralement
// PERFORMANCE: O(produits × catégories possédées × pairs), quadratique au
// pire cas sur les grandes catégories
type HotnessServiceV1 struct {
	universe *catalogdomain.CategoryUniverse
}

// NewHotnessServiceV1 crée une nouvelle instance de HotnessServiceV1
func NewHotnessServiceV1(universe *catalogdomain.CategoryUniverse) *HotnessServiceV1 {
	return &HotnessServiceV1{universe: universe}
}

// ScoreAll calcule et affecte le score hotness de chaque produit survivant
// Après la passe, chaque produit porte un score fini. Le calcul de chaque
// produit est indépendant: seules les tables en lecture sont partagées
func (s *HotnessServiceV1) ScoreAll(products []*catalogdomain.Product) error {
	for _, p := range products {
		p.SetHotness(s.score(p))
	}
	return nil
}

// score calcule le hotness d'un produit face à ses pairs de catégorie
//
//	hotness(P) = Σ_{c ∈ C(P)} weight(c) · mean_{Q ≠ P, c ∈ C(Q)}(price(Q) − price(P))
//
// Une catégorie sans pair ne contribue pas; un produit sans catégorie vaut 0.
// Un score positif signifie des pairs en moyenne plus chers (le produit est
// une affaire comparativement bon marché)
func (s *HotnessServiceV1) score(p *catalogdomain.Product) float64 {
	score := 0.0

	for _, category := range s.universe.Categories() {
		if !p.HasCategory(category) {
			continue
		}

		// Re-balayage complet des pairs à chaque produit (naïf, V1)
		var sum float64
		var count int
		for _, peer := range s.universe.Members(category) {
			if peer.ID() == p.ID() {
				continue
			}
			sum += peer.Price().Sub(p.Price())
			count++
		}

		if count > 0 {
			score += sum / float64(count) * s.universe.Weight(category)
		}
	}

	return score
}
