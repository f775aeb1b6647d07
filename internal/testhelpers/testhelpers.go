package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"preprocess/database"
	catalogdomain "preprocess/internal/catalog/domain"
	sessionsdomain "preprocess/internal/sessions/domain"
)

// MustProduct construit un produit valide ou fait échouer le test
func MustProduct(tb testing.TB, id int64, name string, price float64, categoryPath string) *catalogdomain.Product {
	tb.Helper()
	p, err := catalogdomain.NewProduct(catalogdomain.ProductID(id), name, price, categoryPath)
	if err != nil {
		tb.Fatalf("NewProduct(%d): %v", id, err)
	}
	return p
}

// MustEvent construit un évènement valide ou fait échouer le test
func MustEvent(tb testing.TB, sessionID, userID, productID int64, ts time.Time, eventType string, discount float64) *sessionsdomain.Event {
	tb.Helper()
	e, err := sessionsdomain.NewEvent(
		sessionsdomain.SessionID(sessionID),
		catalogdomain.UserID(userID),
		catalogdomain.ProductID(productID),
		ts, sessionsdomain.EventType(eventType), discount,
	)
	if err != nil {
		tb.Fatalf("NewEvent(session %d): %v", sessionID, err)
	}
	return e
}

// ProductRecord construit une ligne brute de catalogue
func ProductRecord(id int64, name string, price float64, categoryPath string) database.ProductRecord {
	return database.ProductRecord{
		ProductID:    id,
		ProductName:  name,
		Price:        price,
		CategoryPath: categoryPath,
	}
}

// SessionRecord construit une ligne brute d'évènement, ids présents
func SessionRecord(sessionID, userID, productID int64, ts time.Time, eventType string, discount float64) database.SessionRecord {
	u := float64(userID)
	p := float64(productID)
	return database.SessionRecord{
		SessionID:       sessionID,
		UserID:          &u,
		ProductID:       &p,
		Timestamp:       database.FlexTime{Time: ts},
		EventType:       eventType,
		OfferedDiscount: discount,
	}
}

// BaseTime horodatage de référence pour les fixtures
func BaseTime() time.Time {
	return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
}

// SetupTestDB initialise une connexion à la base de données de test
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	db, err := sql.Open("postgres", testConnStr())
	if err != nil {
		tb.Fatalf("Failed to open database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		tb.Fatalf("Failed to ping database: %v", err)
	}

	return db
}

// SkipIfNoDatabase skip le test/benchmark si la DB n'est pas disponible
func SkipIfNoDatabase(tb testing.TB) {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	db, err := sql.Open("postgres", testConnStr())
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		tb.Skip("Database not available:", err)
	}
}

func testConnStr() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "preprocess"),
		getEnv("DB_PASSWORD", "preprocess"),
		getEnv("DB_NAME", "preprocess"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
