package infrastructure

import (
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"preprocess/database"
	"preprocess/internal/shared/infrastructure"
)

// ProductRecordSource source abstraite des enregistrements produits
type ProductRecordSource interface {
	FindAll() ([]database.ProductRecord, error)
}

// JSONLProductSource lit le catalogue depuis un fichier products.jsonl
type JSONLProductSource struct {
	path string
}

// NewJSONLProductSource crée une source JSONL pour les produits
func NewJSONLProductSource(resourcesDir string) *JSONLProductSource {
	return &JSONLProductSource{
		path: filepath.Join(resourcesDir, "products.jsonl"),
	}
}

// FindAll charge tous les enregistrements produits
func (s *JSONLProductSource) FindAll() ([]database.ProductRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeProductRecords(f)
}

// DecodeProductRecords décode un flux JSONL d'enregistrements produits
func DecodeProductRecords(r io.Reader) ([]database.ProductRecord, error) {
	var records []database.ProductRecord
	err := infrastructure.ReadJSONLines(r, func(line []byte) error {
		var rec database.ProductRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ProductQueryRepository source Postgres des enregistrements produits
type ProductQueryRepository struct {
	infrastructure.BaseRepository
}

// NewProductQueryRepository crée un nouveau repository de lecture pour les produits
func NewProductQueryRepository(db *sql.DB) *ProductQueryRepository {
	return &ProductQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// FindAll récupère tous les enregistrements produits
func (r *ProductQueryRepository) FindAll() ([]database.ProductRecord, error) {
	query := `
		SELECT p.product_id, p.product_name, p.price, p.category_path
		FROM products p
		ORDER BY p.product_id
	`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []database.ProductRecord
	for rows.Next() {
		var rec database.ProductRecord
		if err := rows.Scan(&rec.ProductID, &rec.ProductName, &rec.Price, &rec.CategoryPath); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
