package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"preprocess/database"
	analyticsapp "preprocess/internal/analytics/application"
	catalogapp "preprocess/internal/catalog/application"
	catalogdomain "preprocess/internal/catalog/domain"
	cataloginfra "preprocess/internal/catalog/infrastructure"
	exportapp "preprocess/internal/export/application"
	sessionsapp "preprocess/internal/sessions/application"
	sessionsdomain "preprocess/internal/sessions/domain"
	sessionsinfra "preprocess/internal/sessions/infrastructure"
	sharedinfra "preprocess/internal/shared/infrastructure"
)

// pipelineConfig configuration du run batch
type pipelineConfig struct {
	impl    string
	weights map[string]float64
}

// pipelineResult tables produites par un run complet
type pipelineResult struct {
	products    []*catalogdomain.Product
	removed     int
	userCount   int
	signatures  []string
	features    []*sessionsdomain.SessionFeatures
	cleanReport *sessionsapp.CleanReport
	bucketCount int
}

func main() {
	// Charge .env au tout début
	if err := godotenv.Load(); err != nil {
		log.Printf("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	productRecords, sessionRecords, userRecords, err := loadRecords()
	if err != nil {
		log.Fatalf("record store: %v", err)
	}
	log.Printf("record store: %d produits, %d évènements, %d utilisateurs chargés",
		len(productRecords), len(sessionRecords), len(userRecords))

	cfg := pipelineConfig{
		impl:    getEnv("PIPELINE_IMPL", "v2"),
		weights: catalogdomain.DefaultCategoryWeights,
	}

	result, err := runPipeline(cfg, productRecords, sessionRecords, userRecords)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}

	log.Printf("sanitizer: %d produits retenus, %d écartés", len(result.products), result.removed)
	log.Printf("catalogue: %d combinaisons de catégories observées", len(result.signatures))
	for _, line := range result.signatures {
		log.Printf("   %s", line)
	}
	log.Printf("agrégateur: %d sessions, %d lignes sans id, %d lignes sur produits écartés",
		len(result.features), result.cleanReport.DroppedMissingID, result.cleanReport.DroppedRemovedProduct)
	log.Printf("estimateur: %d buckets distincts", result.bucketCount)

	exporter := exportapp.NewExportService()

	outputFile := getEnv("OUTPUT_FILE", "session_preprocessed.csv")
	csvData, err := exporter.ExportSessionsToCSV(result.features)
	if err != nil {
		log.Fatalf("export csv: %v", err)
	}
	if err := os.WriteFile(outputFile, csvData, 0644); err != nil {
		log.Fatalf("export csv: %v", err)
	}
	log.Printf("export: %s écrit (%d sessions)", outputFile, len(result.features))

	if getEnv("EXPORT_PARQUET", "") == "1" {
		parquetFile := strings.TrimSuffix(outputFile, ".csv") + ".parquet"
		parquetData, err := exporter.ExportSessionsToParquet(result.features)
		if err != nil {
			log.Fatalf("export parquet: %v", err)
		}
		if err := os.WriteFile(parquetFile, parquetData, 0644); err != nil {
			log.Fatalf("export parquet: %v", err)
		}
		log.Printf("export: %s écrit", parquetFile)
	}

	if getEnv("EXPORT_CORRELATION", "") == "1" {
		matrix, err := exporter.BuildCorrelationMatrix(result.features)
		if err != nil {
			log.Fatalf("export corrélation: %v", err)
		}
		corrData, err := exporter.ExportCorrelationToCSV(matrix)
		if err != nil {
			log.Fatalf("export corrélation: %v", err)
		}
		corrFile := strings.TrimSuffix(outputFile, ".csv") + "_correlation.csv"
		if err := os.WriteFile(corrFile, corrData, 0644); err != nil {
			log.Fatalf("export corrélation: %v", err)
		}
		log.Printf("export: %s écrit", corrFile)
	}
}

// runPipeline exécute les six étapes du batch, dans l'ordre, jusqu'au bout
// ou échoue franchement. Pas de sortie partielle
func runPipeline(
	cfg pipelineConfig,
	productRecords []database.ProductRecord,
	sessionRecords []database.SessionRecord,
	userRecords []database.UserRecord,
) (*pipelineResult, error) {
	// 1. Assainissement du catalogue
	sanitized := catalogapp.NewProductSanitizer().Sanitize(productRecords)
	products := sanitized.Products()

	// Profils utilisateurs épurés (name et street déjà écartés à l'ingestion)
	userCount := 0
	for _, rec := range userRecords {
		if _, err := catalogdomain.NewUser(catalogdomain.UserID(rec.UserID), rec.Attributes); err == nil {
			userCount++
		}
	}

	// 2. Univers des catégories (erreur de configuration fatale si une
	// pondération manque)
	universe, err := catalogdomain.NewCategoryUniverse(products, cfg.weights)
	if err != nil {
		return nil, fmt.Errorf("category index: %w", err)
	}

	// 3. Scoring hotness
	scorer, err := newHotnessScorer(cfg.impl, universe)
	if err != nil {
		return nil, err
	}
	if err := scorer.ScoreAll(products); err != nil {
		return nil, fmt.Errorf("hotness scorer: %w", err)
	}

	// 4. Nettoyage et agrégation des sessions
	aggregator := sessionsapp.NewSessionAggregator(products)
	events, cleanReport, err := aggregator.CleanEvents(sessionRecords, sanitized.Removed())
	if err != nil {
		return nil, fmt.Errorf("session aggregator: %w", err)
	}
	features, err := aggregator.Aggregate(events)
	if err != nil {
		return nil, fmt.Errorf("session aggregator: %w", err)
	}

	// 5. Estimation de probabilité empirique
	bucketTable, err := analyticsapp.NewProbabilityEstimator().Estimate(features)
	if err != nil {
		return nil, fmt.Errorf("probability estimator: %w", err)
	}

	return &pipelineResult{
		products:    products,
		removed:     sanitized.RemovedCount(),
		userCount:   userCount,
		signatures:  universe.DistinctSignatures(products),
		features:    features,
		cleanReport: cleanReport,
		bucketCount: bucketTable.Size(),
	}, nil
}

// hotnessScorer interface commune aux versions naïve et optimisée
type hotnessScorer interface {
	ScoreAll(products []*catalogdomain.Product) error
}

// newHotnessScorer sélectionne l'implémentation de scoring
func newHotnessScorer(impl string, universe *catalogdomain.CategoryUniverse) (hotnessScorer, error) {
	switch impl {
	case "v1":
		return analyticsapp.NewHotnessServiceV1(universe), nil
	case "v2":
		return analyticsapp.NewHotnessServiceV2(universe, sharedinfra.NewShardedCache(16)), nil
	default:
		return nil, fmt.Errorf("unknown pipeline implementation %q", impl)
	}
}

// loadRecords charge les trois collections depuis la source configurée
func loadRecords() ([]database.ProductRecord, []database.SessionRecord, []database.UserRecord, error) {
	switch source := getEnv("RECORD_SOURCE", "jsonl"); source {
	case "jsonl":
		resourcesDir := getEnv("RESOURCES_DIR", "resources")
		return loadJSONLRecords(resourcesDir)
	case "postgres":
		return loadPostgresRecords()
	default:
		return nil, nil, nil, fmt.Errorf("unknown record source %q", source)
	}
}

// loadJSONLRecords charge les collections depuis les fichiers JSONL
func loadJSONLRecords(resourcesDir string) ([]database.ProductRecord, []database.SessionRecord, []database.UserRecord, error) {
	products, err := cataloginfra.NewJSONLProductSource(resourcesDir).FindAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading products: %w", err)
	}
	sessions, err := sessionsinfra.NewJSONLSessionSource(resourcesDir).FindAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading sessions: %w", err)
	}
	users, err := cataloginfra.NewJSONLUserSource(resourcesDir).FindAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading users: %w", err)
	}
	return products, sessions, users, nil
}

// loadPostgresRecords charge les collections depuis Postgres
func loadPostgresRecords() ([]database.ProductRecord, []database.SessionRecord, []database.UserRecord, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "preprocess"),
		getEnv("DB_PASSWORD", "preprocess"),
		getEnv("DB_NAME", "preprocess"),
		getEnv("DB_SSLMODE", "disable"),
	)

	if err := database.Init(connStr); err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	products, err := cataloginfra.NewProductQueryRepository(database.DB).FindAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading products: %w", err)
	}
	sessions, err := sessionsinfra.NewSessionQueryRepository(database.DB).FindAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading sessions: %w", err)
	}
	users, err := cataloginfra.NewUserQueryRepository(database.DB).FindAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading users: %w", err)
	}
	return products, sessions, users, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
