package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB connexion partagée entre les sources d'enregistrements et le seed
// Le pipeline est un batch court en lecture seule: quelques requêtes de
// chargement puis extinction, d'où un pool volontairement petit
var DB *sql.DB

// Init ouvre la connexion Postgres et vérifie qu'elle répond
func Init(connStr string) error {
	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("ouverture postgres: %w", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(2)
	DB.SetConnMaxLifetime(30 * time.Minute)

	return DB.Ping()
}

// Close ferme la connexion si elle a été ouverte
func Close() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}
