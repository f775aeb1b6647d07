package application

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	catalogdomain "preprocess/internal/catalog/domain"
	sharedinfra "preprocess/internal/shared/infrastructure"
)

// categoryAggregate statistiques pré-calculées d'une catégorie
type categoryAggregate struct {
	priceSum float64
	count    int
}

// HotnessCacheKey construit la clé de cache d'une table de scores
// La clé couvre le contenu du catalogue (ids, prix) et les pondérations:
// deux catalogues de même taille ne partagent jamais une entrée de cache
func HotnessCacheKey(products []*catalogdomain.Product, universe *catalogdomain.CategoryUniverse) string {
	h := fnv.New64a()
	for _, p := range products {
		fmt.Fprintf(h, "%d:%g;", p.ID(), p.Price().Amount())
	}
	for _, category := range universe.Categories() {
		fmt.Fprintf(h, "%s:%g;", category, universe.Weight(category))
	}

	return sharedinfra.NewCacheKeyBuilder().
		Add("hotness").
		Add("v2").
		Add(strconv.FormatUint(h.Sum64(), 16)).
		Build()
}

// HotnessServiceV2 scorer optimisé (Version 2)
//
// V1 PROBLÈME:
//   - re-balaye tous les pairs de chaque catégorie pour chaque produit
//   - coût quadratique dès qu'une catégorie est grande
//
// V2 SOLUTION:
//   - pré-calcule (somme des prix, effectif) par catégorie en une passe
//   - pour un produit P et une catégorie c d'effectif n > 1:
//     mean(price(Q) − price(P)) = (somme_c − price(P)) / (n − 1) − price(P)
//   - répartit le scoring sur un pool de workers, chaque produit n'écrivant
//     que son propre score: résultat observable identique à V1
//   - mémoïse la table de scores dans le cache shardé
type HotnessServiceV2 struct {
	universe    *catalogdomain.CategoryUniverse
	cache       sharedinfra.Cache
	cacheTTL    time.Duration
	workerCount int
}

// NewHotnessServiceV2 crée une nouvelle instance de HotnessServiceV2
func NewHotnessServiceV2(
	universe *catalogdomain.CategoryUniverse,
	cache sharedinfra.Cache,
) *HotnessServiceV2 {
	return &HotnessServiceV2{
		universe:    universe,
		cache:       cache,
		cacheTTL:    5 * time.Minute,
		workerCount: 4,
	}
}

// ScoreAll calcule et affecte le score hotness de chaque produit survivant
// Résultat identique à HotnessServiceV1, coût en O(produits × catégories)
func (s *HotnessServiceV2) ScoreAll(products []*catalogdomain.Product) error {
	cacheKey := HotnessCacheKey(products, s.universe)

	cached, err := sharedinfra.GetOrCompute(s.cache, cacheKey, s.cacheTTL, func() (interface{}, error) {
		return s.computeScores(products)
	})
	if err != nil {
		return err
	}

	scores := cached.([]float64)
	for i, p := range products {
		p.SetHotness(scores[i])
	}
	return nil
}

// computeScores calcule la table de scores sur le pool de workers
func (s *HotnessServiceV2) computeScores(products []*catalogdomain.Product) ([]float64, error) {
	aggregates := s.aggregateCategories()
	scores := make([]float64, len(products))

	chunkSize := (len(products) + s.workerCount - 1) / s.workerCount
	if chunkSize == 0 {
		chunkSize = 1
	}

	var tasks []sharedinfra.Task
	for start := 0; start < len(products); start += chunkSize {
		end := start + chunkSize
		if end > len(products) {
			end = len(products)
		}

		start, end := start, end
		tasks = append(tasks, func() error {
			// Chaque tâche n'écrit que sa tranche disjointe de scores
			for i := start; i < end; i++ {
				scores[i] = s.score(products[i], aggregates)
			}
			return nil
		})
	}

	if err := sharedinfra.RunBatch(s.workerCount, tasks); err != nil {
		return nil, err
	}
	return scores, nil
}

// aggregateCategories pré-calcule (somme des prix, effectif) par catégorie
func (s *HotnessServiceV2) aggregateCategories() map[string]categoryAggregate {
	aggregates := make(map[string]categoryAggregate, s.universe.Size())
	for _, category := range s.universe.Categories() {
		var agg categoryAggregate
		for _, p := range s.universe.Members(category) {
			agg.priceSum += p.Price().Amount()
			agg.count++
		}
		aggregates[category] = agg
	}
	return aggregates
}

// score calcule le hotness d'un produit à partir des agrégats de catégorie
func (s *HotnessServiceV2) score(p *catalogdomain.Product, aggregates map[string]categoryAggregate) float64 {
	score := 0.0
	price := p.Price().Amount()

	for _, category := range p.Categories() {
		agg := aggregates[category]
		if agg.count <= 1 {
			// Seul membre de la catégorie: aucun pair, terme ignoré
			continue
		}
		meanDiff := (agg.priceSum-price)/float64(agg.count-1) - price
		score += meanDiff * s.universe.Weight(category)
	}

	return score
}
