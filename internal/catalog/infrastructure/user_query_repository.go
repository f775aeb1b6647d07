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

// UserRecordSource source abstraite des profils utilisateurs
type UserRecordSource interface {
	FindAll() ([]database.UserRecord, error)
}

// JSONLUserSource lit les profils depuis un fichier users.jsonl
type JSONLUserSource struct {
	path string
}

// NewJSONLUserSource crée une source JSONL pour les profils
func NewJSONLUserSource(resourcesDir string) *JSONLUserSource {
	return &JSONLUserSource{
		path: filepath.Join(resourcesDir, "users.jsonl"),
	}
}

// FindAll charge tous les profils utilisateurs
func (s *JSONLUserSource) FindAll() ([]database.UserRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeUserRecords(f)
}

// DecodeUserRecords décode un flux JSONL de profils utilisateurs
// Les champs name et street sont écartés par le décodage de UserRecord
func DecodeUserRecords(r io.Reader) ([]database.UserRecord, error) {
	var records []database.UserRecord
	err := infrastructure.ReadJSONLines(r, func(line []byte) error {
		var rec database.UserRecord
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

// UserQueryRepository source Postgres des profils utilisateurs
type UserQueryRepository struct {
	infrastructure.BaseRepository
}

// NewUserQueryRepository crée un nouveau repository de lecture pour les profils
func NewUserQueryRepository(db *sql.DB) *UserQueryRepository {
	return &UserQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// FindAll récupère tous les profils, sans les colonnes name et street
func (r *UserQueryRepository) FindAll() ([]database.UserRecord, error) {
	query := `
		SELECT u.user_id, u.city
		FROM users u
		ORDER BY u.user_id
	`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []database.UserRecord
	for rows.Next() {
		var (
			userID int64
			city   sql.NullString
		)
		if err := rows.Scan(&userID, &city); err != nil {
			return nil, err
		}

		rec := database.UserRecord{
			UserID:     userID,
			Attributes: make(map[string]interface{}),
		}
		if city.Valid {
			rec.Attributes["city"] = city.String
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
