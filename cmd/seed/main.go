package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"preprocess/database"

	"github.com/joho/godotenv"
)

func main() {
	// Charge .env
	err := godotenv.Load()
	if err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	productCount, _ := strconv.Atoi(getEnv("SEED_PRODUCTS", "200"))
	userCount, _ := strconv.Atoi(getEnv("SEED_USERS", "100"))
	sessionCount, _ := strconv.Atoi(getEnv("SEED_SESSIONS", "5000"))

	fmt.Println("🌱 Démarrage du seed des données de test...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("   %d produits, %d utilisateurs, %d évènements\n", productCount, userCount, sessionCount)

	switch target := getEnv("RECORD_SOURCE", "jsonl"); target {
	case "jsonl":
		err = seedJSONL(productCount, userCount, sessionCount)
	case "postgres":
		err = seedPostgres(productCount, userCount, sessionCount)
	default:
		err = fmt.Errorf("unknown record source %q", target)
	}
	if err != nil {
		log.Fatal("❌ Erreur lors du seed:", err)
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("✅ Seed terminé avec succès!")
	fmt.Println()
	fmt.Println("Vous pouvez maintenant lancer le pipeline avec:")
	fmt.Println("  go run main.go")
}

// seedJSONL écrit les trois collections au format JSON Lines dans
// RESOURCES_DIR
func seedJSONL(productCount, userCount, sessionCount int) error {
	resourcesDir := getEnv("RESOURCES_DIR", "resources")
	if err := os.MkdirAll(resourcesDir, 0755); err != nil {
		return err
	}

	products := database.GenerateProductSeeds(productCount)
	users := database.GenerateUserSeeds(userCount)
	sessions := database.GenerateSessionSeeds(sessionCount, products, users)

	if err := writeJSONL(filepath.Join(resourcesDir, "products.jsonl"), products); err != nil {
		return err
	}
	fmt.Printf("   %s/products.jsonl écrit\n", resourcesDir)

	if err := writeJSONL(filepath.Join(resourcesDir, "users.jsonl"), users); err != nil {
		return err
	}
	fmt.Printf("   %s/users.jsonl écrit\n", resourcesDir)

	if err := writeJSONL(filepath.Join(resourcesDir, "sessions.jsonl"), sessions); err != nil {
		return err
	}
	fmt.Printf("   %s/sessions.jsonl écrit\n", resourcesDir)

	return nil
}

// seedPostgres crée le schéma et insère les collections dans Postgres
func seedPostgres(productCount, userCount, sessionCount int) error {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "preprocess"),
		getEnv("DB_PASSWORD", "preprocess"),
		getEnv("DB_NAME", "preprocess"),
		getEnv("DB_SSLMODE", "disable"),
	)

	if err := database.Init(connStr); err != nil {
		return fmt.Errorf("connexion DB: %w", err)
	}
	defer database.Close()

	fmt.Println("✅ Connexion PostgreSQL établie")
	return database.SeedDatabase(productCount, userCount, sessionCount)
}

// writeJSONL sérialise une collection, un document JSON par ligne
func writeJSONL[T any](path string, items []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return f.Sync()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
