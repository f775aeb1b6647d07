package infrastructure

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestJSONLProductSourceFindAll vérifie la lecture d'un products.jsonl brut
func TestJSONLProductSourceFindAll(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		`{"product_id": 101, "product_name": "Konsola Prime", "price": 1800.0, "category_path": "Gry i konsole;Konsole"}`,
		``,
		`{"product_id": 102, "product_name": "Konsola#Promo", "price": -5.0, "category_path": "Gry i konsole"}`,
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "products.jsonl"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := NewJSONLProductSource(dir).FindAll()
	if err != nil {
		t.Fatal(err)
	}

	// Lecture brute: la ligne défectueuse passe, le sanitizer tranchera
	if len(records) != 2 {
		t.Fatalf("%d enregistrements, attendu 2", len(records))
	}
	if records[0].ProductID != 101 || records[0].CategoryPath != "Gry i konsole;Konsole" {
		t.Errorf("ligne 1 inattendue: %+v", records[0])
	}
	if records[1].Price != -5.0 {
		t.Errorf("prix brut = %v, attendu -5 (non filtré ici)", records[1].Price)
	}
}

// TestJSONLUserSourceFindAll vérifie que name et street disparaissent dès la
// lecture du fichier
func TestJSONLUserSourceFindAll(t *testing.T) {
	dir := t.TempDir()
	content := `{"user_id": 7, "name": "Jan Kowalski", "city": "Kraków", "street": "Floriańska 3"}` + "\n"
	if err := os.WriteFile(filepath.Join(dir, "users.jsonl"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := NewJSONLUserSource(dir).FindAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 || records[0].UserID != 7 {
		t.Fatalf("enregistrements inattendus: %+v", records)
	}
	if _, found := records[0].Attributes["name"]; found {
		t.Error("attribut name conservé")
	}
	if _, found := records[0].Attributes["street"]; found {
		t.Error("attribut street conservé")
	}
}
