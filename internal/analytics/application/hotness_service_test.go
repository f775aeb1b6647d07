package application

import (
	"fmt"
	"math"
	"testing"

	catalogdomain "preprocess/internal/catalog/domain"
	sharedinfra "preprocess/internal/shared/infrastructure"
	"preprocess/internal/testhelpers"
)

func buildUniverse(t testing.TB, products []*catalogdomain.Product, weights map[string]float64) *catalogdomain.CategoryUniverse {
	t.Helper()
	universe, err := catalogdomain.NewCategoryUniverse(products, weights)
	if err != nil {
		t.Fatalf("NewCategoryUniverse: %v", err)
	}
	return universe
}

// TestHotnessV1TwoPeers vérifie le score sur deux produits d'une même
// catégorie pondérée 1/3: A=100 face à B=300 donne ±200/3
func TestHotnessV1TwoPeers(t *testing.T) {
	products := []*catalogdomain.Product{
		testhelpers.MustProduct(t, 1, "Glosnik mini", 100, "Audio"),
		testhelpers.MustProduct(t, 2, "Glosnik premium", 300, "Audio"),
	}
	universe := buildUniverse(t, products, map[string]float64{"Audio": 1.0 / 3.0})

	if err := NewHotnessServiceV1(universe).ScoreAll(products); err != nil {
		t.Fatal(err)
	}

	wantA := 200.0 / 3.0
	gotA, ok := products[0].Hotness()
	if !ok || math.Abs(gotA-wantA) > 1e-9 {
		t.Errorf("hotness(A) = %v, attendu %v", gotA, wantA)
	}
	gotB, ok := products[1].Hotness()
	if !ok || math.Abs(gotB+wantA) > 1e-9 {
		t.Errorf("hotness(B) = %v, attendu %v", gotB, -wantA)
	}
}

// TestHotnessV1NoPeers vérifie qu'un produit seul dans sa catégorie, ou sans
// catégorie, obtient un score nul (et non une absence de score)
func TestHotnessV1NoPeers(t *testing.T) {
	products := []*catalogdomain.Product{
		testhelpers.MustProduct(t, 1, "Antena", 120, "Anteny RTV"),
		testhelpers.MustProduct(t, 2, "Bez kategorii", 50, ""),
	}
	universe := buildUniverse(t, products, map[string]float64{"Anteny RTV": 1.0 / 6.0})

	if err := NewHotnessServiceV1(universe).ScoreAll(products); err != nil {
		t.Fatal(err)
	}

	for _, p := range products {
		got, ok := p.Hotness()
		if !ok || got != 0 {
			t.Errorf("hotness(%d) = (%v, %v), attendu (0, true)", p.ID(), got, ok)
		}
	}
}

// TestHotnessV1WeightLinearity vérifie que doubler une pondération double la
// contribution de la catégorie
func TestHotnessV1WeightLinearity(t *testing.T) {
	build := func(w float64) float64 {
		products := []*catalogdomain.Product{
			testhelpers.MustProduct(t, 1, "Glosnik mini", 100, "Audio"),
			testhelpers.MustProduct(t, 2, "Glosnik premium", 300, "Audio"),
		}
		universe := buildUniverse(t, products, map[string]float64{"Audio": w})
		if err := NewHotnessServiceV1(universe).ScoreAll(products); err != nil {
			t.Fatal(err)
		}
		h, _ := products[0].Hotness()
		return h
	}

	single := build(1.0 / 3.0)
	double := build(2.0 / 3.0)
	if math.Abs(double-2*single) > 1e-9 {
		t.Errorf("hotness à pondération doublée = %v, attendu %v", double, 2*single)
	}
}

// TestHotnessV1MultiCategory vérifie la somme des contributions par catégorie
func TestHotnessV1MultiCategory(t *testing.T) {
	products := []*catalogdomain.Product{
		testhelpers.MustProduct(t, 1, "Sluchawki", 100, "Audio;Akcesoria"),
		testhelpers.MustProduct(t, 2, "Glosnik", 300, "Audio"),
		testhelpers.MustProduct(t, 3, "Etui", 40, "Akcesoria"),
	}
	universe := buildUniverse(t, products, map[string]float64{
		"Audio":     1.0 / 3.0,
		"Akcesoria": 1.0 / 6.0,
	})

	if err := NewHotnessServiceV1(universe).ScoreAll(products); err != nil {
		t.Fatal(err)
	}

	// Audio: (300-100)/1 × 1/3 + Akcesoria: (40-100)/1 × 1/6
	want := 200.0/3.0 - 10.0
	got, _ := products[0].Hotness()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("hotness = %v, attendu %v", got, want)
	}
}

// generateCatalog fabrique un catalogue synthétique réparti sur des
// catégories de tailles variées
func generateCatalog(tb testing.TB, n int) ([]*catalogdomain.Product, map[string]float64) {
	tb.Helper()
	categories := []string{"Audio", "Akcesoria", "Anteny RTV", "Konsole", "Smartfony"}
	weights := map[string]float64{
		"Audio":      1.0 / 3.0,
		"Akcesoria":  1.0 / 6.0,
		"Anteny RTV": 1.0 / 6.0,
		"Konsole":    2.0 / 3.0,
		"Smartfony":  2.0 / 3.0,
	}

	products := make([]*catalogdomain.Product, 0, n)
	for i := 0; i < n; i++ {
		path := categories[i%len(categories)]
		if i%3 == 0 {
			path += ";" + categories[(i+1)%len(categories)]
		}
		price := 10.0 + float64(i%500)*7.3
		products = append(products, testhelpers.MustProduct(tb, int64(i+1),
			fmt.Sprintf("Produkt %d", i+1), price, path))
	}
	return products, weights
}

// TestHotnessV1V2Equivalence vérifie que la version optimisée produit
// exactement les mêmes scores que la version naïve
func TestHotnessV1V2Equivalence(t *testing.T) {
	productsV1, weights := generateCatalog(t, 200)
	productsV2, _ := generateCatalog(t, 200)

	universeV1 := buildUniverse(t, productsV1, weights)
	universeV2 := buildUniverse(t, productsV2, weights)

	if err := NewHotnessServiceV1(universeV1).ScoreAll(productsV1); err != nil {
		t.Fatal(err)
	}
	if err := NewHotnessServiceV2(universeV2, sharedinfra.NewInMemoryCache()).ScoreAll(productsV2); err != nil {
		t.Fatal(err)
	}

	for i := range productsV1 {
		h1, ok1 := productsV1[i].Hotness()
		h2, ok2 := productsV2[i].Hotness()
		if !ok1 || !ok2 {
			t.Fatalf("produit %d: score manquant (v1=%v, v2=%v)", productsV1[i].ID(), ok1, ok2)
		}
		// Même résultat au réarrangement flottant près
		if math.Abs(h1-h2) > 1e-6 {
			t.Errorf("produit %d: v1=%v, v2=%v", productsV1[i].ID(), h1, h2)
		}
	}
}

// TestHotnessV2CacheHit vérifie que le second run sert les scores du cache
func TestHotnessV2CacheHit(t *testing.T) {
	products, weights := generateCatalog(t, 50)
	universe := buildUniverse(t, products, weights)
	cache := sharedinfra.NewInMemoryCache()
	service := NewHotnessServiceV2(universe, cache)

	if err := service.ScoreAll(products); err != nil {
		t.Fatal(err)
	}
	firstRun := make([]float64, len(products))
	for i, p := range products {
		firstRun[i], _ = p.Hotness()
	}

	key := HotnessCacheKey(products, universe)
	if _, found := cache.Get(key); !found {
		t.Fatalf("clé %q absente du cache après le premier run", key)
	}

	if err := service.ScoreAll(products); err != nil {
		t.Fatal(err)
	}
	for i, p := range products {
		if got, _ := p.Hotness(); got != firstRun[i] {
			t.Errorf("produit %d: score %v après cache hit, attendu %v", p.ID(), got, firstRun[i])
		}
	}
}

// TestHotnessV2SharedCacheDistinctCatalogs vérifie que deux catalogues de
// même taille ne se servent pas mutuellement leurs scores via un cache
// partagé: la clé couvre le contenu, pas seulement les effectifs
func TestHotnessV2SharedCacheDistinctCatalogs(t *testing.T) {
	cache := sharedinfra.NewInMemoryCache()
	weights := map[string]float64{"Audio": 1.0 / 3.0}

	catalogA := []*catalogdomain.Product{
		testhelpers.MustProduct(t, 1, "Glosnik mini", 100, "Audio"),
		testhelpers.MustProduct(t, 2, "Glosnik premium", 300, "Audio"),
	}
	universeA := buildUniverse(t, catalogA, weights)
	if err := NewHotnessServiceV2(universeA, cache).ScoreAll(catalogA); err != nil {
		t.Fatal(err)
	}

	// Même nombre de produits et de catégories, prix différents
	catalogB := []*catalogdomain.Product{
		testhelpers.MustProduct(t, 1, "Glosnik mini", 100, "Audio"),
		testhelpers.MustProduct(t, 2, "Glosnik studio", 1000, "Audio"),
	}
	universeB := buildUniverse(t, catalogB, weights)
	if err := NewHotnessServiceV2(universeB, cache).ScoreAll(catalogB); err != nil {
		t.Fatal(err)
	}

	want := 900.0 / 3.0
	got, ok := catalogB[0].Hotness()
	if !ok || math.Abs(got-want) > 1e-9 {
		t.Errorf("hotness = %v, attendu %v (scores de l'autre catalogue servis?)", got, want)
	}

	if HotnessCacheKey(catalogA, universeA) == HotnessCacheKey(catalogB, universeB) {
		t.Error("clés de cache identiques pour des catalogues différents")
	}
}

// ========================================
// Benchmarks: V1 (naïf) vs V2 (optimisé)
// ========================================

// BenchmarkHotnessV1 mesure le balayage naïf des pairs
func BenchmarkHotnessV1(b *testing.B) {
	products, weights := generateCatalog(b, 1000)
	universe := buildUniverse(b, products, weights)
	service := NewHotnessServiceV1(universe)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = service.ScoreAll(products)
	}
}

// BenchmarkHotnessV2_ColdCache mesure la version agrégée sans cache hit
func BenchmarkHotnessV2_ColdCache(b *testing.B) {
	products, weights := generateCatalog(b, 1000)
	universe := buildUniverse(b, products, weights)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		cache := sharedinfra.NewInMemoryCache()
		service := NewHotnessServiceV2(universe, cache)
		b.StartTimer()

		_ = service.ScoreAll(products)
	}
}

// BenchmarkHotnessV2_WarmCache mesure le chemin cache hit
func BenchmarkHotnessV2_WarmCache(b *testing.B) {
	products, weights := generateCatalog(b, 1000)
	universe := buildUniverse(b, products, weights)
	service := NewHotnessServiceV2(universe, sharedinfra.NewInMemoryCache())

	// Pré-chauffe le cache
	_ = service.ScoreAll(products)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = service.ScoreAll(products)
	}
}
