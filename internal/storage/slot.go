// Package storage persists the vault as a single JSON snapshot in a local
// key/value slot backed by SQLite. Every save overwrites the slot wholesale;
// this is a best-effort cache behind the in-memory store, not a durable
// database.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/user/mindvault/internal/vault"
)

// SlotKey names the slot holding the resource snapshot.
const SlotKey = "mindvault_resources"

// ErrNotFound means the slot has never been written.
var ErrNotFound = errors.New("snapshot slot not found")

// Slot is a vault.Persister over a SQLite key/value table.
type Slot struct {
	db  *sql.DB
	key string
}

// Open opens (creating if needed) the slot database under dataDir.
func Open(dataDir string) (*Slot, error) {
	dbPath := filepath.Join(dataDir, "mindvault.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	s := &Slot{db: db, key: SlotKey}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Slot) Close() error {
	return s.db.Close()
}

func (s *Slot) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads and decodes the snapshot. Returns ErrNotFound when the slot has
// never been written and a decode error when its content is malformed; the
// caller falls back to seed data in both cases.
func (s *Slot) Load() ([]vault.Resource, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, s.key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var resources []vault.Resource
	if err := json.Unmarshal([]byte(value), &resources); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	for i := range resources {
		if resources[i].Tags == nil {
			resources[i].Tags = []string{}
		}
	}
	return resources, nil
}

// Save serializes the full sequence and overwrites the slot.
func (s *Slot) Save(resources []vault.Resource) error {
	data, err := json.Marshal(resources)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		s.key, string(data),
	)
	return err
}
