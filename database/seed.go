package database

import (
	"fmt"
	"math/rand"
	"time"
)

// ============================================================================
// GÉNÉRATION DE FIXTURES - les trois collections d'entrée du pipeline
// Inclut une dose contrôlée de lignes défectueuses pour exercer le sanitizer:
// prix hors bornes, caractères interdits dans les noms, ids manquants
// ============================================================================

// ProductSeed ligne produit brute telle qu'exportée (avant ingestion)
type ProductSeed struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Price        float64 `json:"price"`
	CategoryPath string  `json:"category_path"`
}

// SessionSeed ligne d'évènement brute telle qu'exportée (avant ingestion)
type SessionSeed struct {
	SessionID       int64    `json:"session_id"`
	Timestamp       FlexTime `json:"timestamp"`
	UserID          *int64   `json:"user_id"`
	ProductID       *int64   `json:"product_id"`
	EventType       string   `json:"event_type"`
	OfferedDiscount float64  `json:"offered_discount"`
	PurchaseID      *int64   `json:"purchase_id"`
}

// UserSeed ligne de profil brute telle qu'exportée (avant ingestion)
type UserSeed struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	City   string `json:"city"`
	Street string `json:"street"`
}

// categoryPaths chemins de catégories construits sur la table de pondération
var categoryPaths = []string{
	"Gry i konsole;Gry komputerowe",
	"Gry i konsole;Gry na konsole;Gry PlayStation3",
	"Gry i konsole;Gry na konsole;Gry Xbox 360",
	"Komputery;Monitory;Monitory LCD",
	"Komputery;Drukarki i skanery;Biurowe urządzenia wielofunkcyjne",
	"Komputery;Tablety i akcesoria;Tablety",
	"Sprzęt RTV;Audio;Słuchawki",
	"Sprzęt RTV;Przenośne audio i video;Odtwarzacze mp3 i mp4",
	"Sprzęt RTV;Video;Odtwarzacze DVD",
	"Sprzęt RTV;Telewizory i akcesoria;Anteny RTV",
	"Sprzęt RTV;Telewizory i akcesoria;Okulary 3D",
	"Telefony i akcesoria;Telefony komórkowe",
	"Telefony i akcesoria;Telefony stacjonarne",
	"Telefony i akcesoria;Akcesoria telefoniczne;Zestawy głośnomówiące",
	"Telefony i akcesoria;Akcesoria telefoniczne;Zestawy słuchawkowe",
}

var productAdjectives = []string{
	"Classic", "Pro", "Mini", "Ultra", "Compact", "Prime", "Max", "Neo",
}

var userCities = []string{
	"Warszawa", "Kraków", "Gdańsk", "Poznań", "Wrocław", "Łódź", "Szczecin",
}

// GenerateProductSeeds génère count produits dont ~5% défectueux
func GenerateProductSeeds(count int) []ProductSeed {
	products := make([]ProductSeed, 0, count)

	for i := 0; i < count; i++ {
		id := int64(1001 + i)
		path := categoryPaths[rand.Intn(len(categoryPaths))]
		name := fmt.Sprintf("%s %d", productAdjectives[rand.Intn(len(productAdjectives))], id)
		price := 10 + rand.Float64()*2000

		// Lignes défectueuses volontaires pour le sanitizer
		switch i % 20 {
		case 7:
			price = -price
		case 13:
			price = MaxSeedPrice + rand.Float64()*1000
		case 17:
			name = fmt.Sprintf("%s#%d", name, i)
		}

		products = append(products, ProductSeed{
			ProductID:    id,
			ProductName:  name,
			Price:        price,
			CategoryPath: path,
		})
	}

	return products
}

// MaxSeedPrice aligné sur la borne du sanitizer
const MaxSeedPrice = 1_000_000.0

// GenerateUserSeeds génère count profils utilisateurs
func GenerateUserSeeds(count int) []UserSeed {
	users := make([]UserSeed, 0, count)
	for i := 0; i < count; i++ {
		id := int64(101 + i)
		users = append(users, UserSeed{
			UserID: id,
			Name:   fmt.Sprintf("User %d", id),
			City:   userCities[rand.Intn(len(userCities))],
			Street: fmt.Sprintf("ul. Testowa %d", rand.Intn(200)+1),
		})
	}
	return users
}

// GenerateSessionSeeds génère sessionCount sessions multi-évènements
// Environ 3% des lignes ont un user_id ou product_id manquant
func GenerateSessionSeeds(sessionCount int, products []ProductSeed, users []UserSeed) []SessionSeed {
	rows := make([]SessionSeed, 0, sessionCount*3)
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < sessionCount; i++ {
		sessionID := int64(50001 + i)
		userID := users[rand.Intn(len(users))].UserID
		start := base.Add(time.Duration(rand.Intn(365*24)) * time.Hour)
		eventCount := 1 + rand.Intn(5)
		buys := rand.Float64() < 0.3

		for j := 0; j < eventCount; j++ {
			productID := products[rand.Intn(len(products))].ProductID
			eventType := "VIEW_PRODUCT"
			var purchaseID *int64
			if buys && j == eventCount-1 {
				eventType = "BUY_PRODUCT"
				pid := sessionID * 10
				purchaseID = &pid
			}

			row := SessionSeed{
				SessionID:       sessionID,
				Timestamp:       FlexTime{start.Add(time.Duration(j*30+rand.Intn(30)) * time.Second)},
				UserID:          &userID,
				ProductID:       &productID,
				EventType:       eventType,
				OfferedDiscount: float64(rand.Intn(5)) * 0.05,
				PurchaseID:      purchaseID,
			}

			// Lignes défectueuses volontaires: ids manquants
			switch rand.Intn(33) {
			case 0:
				row.UserID = nil
			case 1:
				row.ProductID = nil
			}

			rows = append(rows, row)
		}
	}

	return rows
}

// SeedDatabase crée le schéma et peuple les trois tables d'entrée
func SeedDatabase(productCount, userCount, sessionCount int) error {
	fmt.Println("Création du schéma...")
	if err := createSchema(); err != nil {
		return fmt.Errorf("erreur création schéma: %w", err)
	}

	fmt.Printf("Génération de %d produits...\n", productCount)
	products := GenerateProductSeeds(productCount)
	if err := insertProducts(products); err != nil {
		return fmt.Errorf("erreur insertion produits: %w", err)
	}

	fmt.Printf("Génération de %d utilisateurs...\n", userCount)
	users := GenerateUserSeeds(userCount)
	if err := insertUsers(users); err != nil {
		return fmt.Errorf("erreur insertion utilisateurs: %w", err)
	}

	fmt.Printf("Génération de %d sessions...\n", sessionCount)
	sessions := GenerateSessionSeeds(sessionCount, products, users)
	if err := insertSessions(sessions); err != nil {
		return fmt.Errorf("erreur insertion sessions: %w", err)
	}

	_, err := DB.Exec("ANALYZE")
	if err != nil {
		fmt.Println("Attention: échec de l'analyse:", err)
	}

	return nil
}

// createSchema crée les trois tables d'entrée du pipeline
func createSchema() error {
	statements := []string{
		`DROP TABLE IF EXISTS sessions`,
		`DROP TABLE IF EXISTS products`,
		`DROP TABLE IF EXISTS users`,
		`CREATE TABLE products (
			product_id    BIGINT PRIMARY KEY,
			product_name  TEXT NOT NULL,
			price         DOUBLE PRECISION NOT NULL,
			category_path TEXT NOT NULL
		)`,
		`CREATE TABLE users (
			user_id BIGINT PRIMARY KEY,
			name    TEXT,
			city    TEXT,
			street  TEXT
		)`,
		`CREATE TABLE sessions (
			session_id       BIGINT NOT NULL,
			ts               TIMESTAMP NOT NULL,
			user_id          BIGINT,
			product_id       BIGINT,
			event_type       TEXT NOT NULL,
			offered_discount DOUBLE PRECISION NOT NULL,
			purchase_id      BIGINT
		)`,
		`CREATE INDEX idx_sessions_session_id ON sessions(session_id)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// insertProducts insère les produits générés
func insertProducts(products []ProductSeed) error {
	for _, p := range products {
		_, err := DB.Exec(`
			INSERT INTO products (product_id, product_name, price, category_path)
			VALUES ($1, $2, $3, $4)
		`, p.ProductID, p.ProductName, p.Price, p.CategoryPath)
		if err != nil {
			return err
		}
	}
	fmt.Printf("   %d produits créés\n", len(products))
	return nil
}

// insertUsers insère les profils générés
func insertUsers(users []UserSeed) error {
	for _, u := range users {
		_, err := DB.Exec(`
			INSERT INTO users (user_id, name, city, street)
			VALUES ($1, $2, $3, $4)
		`, u.UserID, u.Name, u.City, u.Street)
		if err != nil {
			return err
		}
	}
	fmt.Printf("   %d utilisateurs créés\n", len(users))
	return nil
}

// insertSessions insère les évènements générés
func insertSessions(sessions []SessionSeed) error {
	for _, s := range sessions {
		_, err := DB.Exec(`
			INSERT INTO sessions (session_id, ts, user_id, product_id, event_type, offered_discount, purchase_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, s.SessionID, s.Timestamp.Time, s.UserID, s.ProductID, s.EventType, s.OfferedDiscount, s.PurchaseID)
		if err != nil {
			return err
		}
	}
	fmt.Printf("   %d évènements de session créés\n", len(sessions))
	return nil
}
