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

// SessionRecordSource source abstraite des évènements de session
type SessionRecordSource interface {
	FindAll() ([]database.SessionRecord, error)
}

// JSONLSessionSource lit les évènements depuis un fichier sessions.jsonl
type JSONLSessionSource struct {
	path string
}

// NewJSONLSessionSource crée une source JSONL pour les évènements
func NewJSONLSessionSource(resourcesDir string) *JSONLSessionSource {
	return &JSONLSessionSource{
		path: filepath.Join(resourcesDir, "sessions.jsonl"),
	}
}

// FindAll charge tous les évènements de session
func (s *JSONLSessionSource) FindAll() ([]database.SessionRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeSessionRecords(f)
}

// DecodeSessionRecords décode un flux JSONL d'évènements de session
// purchase_id est ignoré dès cette étape
func DecodeSessionRecords(r io.Reader) ([]database.SessionRecord, error) {
	var records []database.SessionRecord
	err := infrastructure.ReadJSONLines(r, func(line []byte) error {
		var rec database.SessionRecord
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

// SessionQueryRepository source Postgres des évènements de session
type SessionQueryRepository struct {
	infrastructure.BaseRepository
}

// NewSessionQueryRepository crée un nouveau repository de lecture pour les évènements
func NewSessionQueryRepository(db *sql.DB) *SessionQueryRepository {
	return &SessionQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// FindAll récupère tous les évènements, sans la colonne purchase_id
// L'ordre d'insertion est préservé pour garder l'ordre de première
// apparition des sessions reproductible
func (r *SessionQueryRepository) FindAll() ([]database.SessionRecord, error) {
	query := `
		SELECT s.session_id, s.ts, s.user_id, s.product_id, s.event_type, s.offered_discount
		FROM sessions s
		ORDER BY s.session_id, s.ts
	`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []database.SessionRecord
	for rows.Next() {
		var (
			rec       database.SessionRecord
			userID    sql.NullInt64
			productID sql.NullInt64
		)
		if err := rows.Scan(&rec.SessionID, &rec.Timestamp.Time, &userID, &productID, &rec.EventType, &rec.OfferedDiscount); err != nil {
			return nil, err
		}
		if userID.Valid {
			v := float64(userID.Int64)
			rec.UserID = &v
		}
		if productID.Valid {
			v := float64(productID.Int64)
			rec.ProductID = &v
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
