package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"ocdb/model"
)

// StorageKey é a chave única que guarda a lista serializada de casas,
// herdada do formato antigo do app (localStorage).
const StorageKey = "ocdb_official_db"

const schema = `
CREATE TABLE IF NOT EXISTS app_storage (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// InitSchema aplica o esquema mínimo do banco.
func InitSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply app_storage schema: %w", err)
	}
	return nil
}

// LoadVenues carrega a lista completa de casas do armazenamento.
// Blob ausente ou corrompido vira banco vazio (logado, nunca fatal).
func LoadVenues(db *sqlx.DB) ([]model.Venue, error) {
	var blob string
	err := db.Get(&blob, "SELECT value FROM app_storage WHERE key = ?", StorageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.Venue{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read venue storage: %w", err)
	}

	var venues []model.Venue
	if err := json.Unmarshal([]byte(blob), &venues); err != nil {
		log.Printf("WARN: corrupt venue blob, starting with an empty database: %v", err)
		return []model.Venue{}, nil
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	return venues, nil
}

// SaveVenues grava a lista inteira como um único blob JSON.
func SaveVenues(db *sqlx.DB, venues []model.Venue) error {
	blob, err := json.Marshal(venues)
	if err != nil {
		return fmt.Errorf("failed to serialize venue list: %w", err)
	}

	const q = `
		INSERT INTO app_storage (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value
	`
	if _, err := db.Exec(q, StorageKey, string(blob)); err != nil {
		return fmt.Errorf("failed to persist venue list: %w", err)
	}
	return nil
}
