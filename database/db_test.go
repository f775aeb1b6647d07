package database

import (
	"fmt"
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// testConnStr reconstruit la chaîne de connexion depuis l'environnement,
// avec les mêmes défauts que le binaire
func testConnStr(tb testing.TB) string {
	tb.Helper()
	_ = godotenv.Load("../.env")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "preprocess"),
		envOr("DB_PASSWORD", "preprocess"),
		envOr("DB_NAME", "preprocess"),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// TestInitAndClose vérifie l'ouverture du pool et sa fermeture idempotente
func TestInitAndClose(t *testing.T) {
	if err := Init(testConnStr(t)); err != nil {
		t.Skipf("base de données indisponible: %v", err)
	}

	if DB == nil {
		t.Fatal("DB nil après Init")
	}
	if err := DB.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Close sans connexion ouverte ne doit pas échouer
	DB = nil
	if err := Close(); err != nil {
		t.Fatalf("Close sur DB nil: %v", err)
	}
}
