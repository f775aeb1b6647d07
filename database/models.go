package database

import (
	"encoding/json"
	"fmt"
	"time"
)

// ============================================================================
// MODÈLES DE DONNÉES - enregistrements bruts des trois collections d'entrée
// Une ligne JSON par enregistrement (JSONL) ou une ligne de table Postgres
// ============================================================================

// timestampLayouts formats acceptés pour les horodatages des sessions
// Les exports JSONL d'origine n'ont pas de fuseau horaire
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FlexTime horodatage tolérant aux formats d'export hétérogènes
type FlexTime struct {
	time.Time
}

// UnmarshalJSON décode un horodatage en essayant chaque format connu
func (ft *FlexTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ft.Time = t
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format: %q", raw)
}

// MarshalJSON encode l'horodatage dans le format des exports d'origine
func (ft FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(ft.Format("2006-01-02T15:04:05"))
}

// ProductRecord - ligne brute du catalogue produits
// category_path est une chaîne de segments séparés par ';'
type ProductRecord struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Price        float64 `json:"price"`
	CategoryPath string  `json:"category_path"`
}

// SessionRecord - ligne brute d'évènement de session
// user_id et product_id sont nullables dans la source; les exports JSON les
// sérialisent parfois en flottants, d'où le *float64 tronqué à la lecture
// purchase_id est ignoré dès l'ingestion
type SessionRecord struct {
	SessionID       int64    `json:"session_id"`
	UserID          *float64 `json:"user_id"`
	ProductID       *float64 `json:"product_id"`
	Timestamp       FlexTime `json:"timestamp"`
	EventType       string   `json:"event_type"`
	OfferedDiscount float64  `json:"offered_discount"`
}

// HasUserID vérifie la présence d'un user_id
func (sr *SessionRecord) HasUserID() bool {
	return sr.UserID != nil
}

// HasProductID vérifie la présence d'un product_id
func (sr *SessionRecord) HasProductID() bool {
	return sr.ProductID != nil
}

// UserIDValue retourne le user_id tronqué en entier (présence requise)
func (sr *SessionRecord) UserIDValue() int64 {
	return int64(*sr.UserID)
}

// ProductIDValue retourne le product_id tronqué en entier (présence requise)
func (sr *SessionRecord) ProductIDValue() int64 {
	return int64(*sr.ProductID)
}

// UserRecord - ligne brute de profil utilisateur
// Les champs name et street sont supprimés à l'ingestion, le reste est
// conservé tel quel dans Attributes
type UserRecord struct {
	UserID     int64
	Attributes map[string]interface{}
}

// UnmarshalJSON décode un profil en écartant les champs name et street
func (ur *UserRecord) UnmarshalJSON(data []byte) error {
	raw := make(map[string]interface{})
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, ok := raw["user_id"].(float64)
	if !ok {
		return fmt.Errorf("user record without numeric user_id")
	}
	ur.UserID = int64(id)

	delete(raw, "user_id")
	delete(raw, "name")
	delete(raw, "street")
	ur.Attributes = raw
	return nil
}
