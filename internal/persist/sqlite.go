package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rgoodwin/housetab/internal/model"
)

// Namespace is the fixed key the snapshot is stored under. Changing it
// orphans previously saved state, so treat it as part of the format.
const Namespace = "housetab-state-v1"

// SQLite persists the snapshot as a single JSON document in a one-row
// table, keyed by Namespace.
type SQLite struct {
	db *sql.DB
}

// NewSQLite returns a sqlite backend over an already-migrated database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Load() (*model.Snapshot, error) {
	var doc string
	err := s.db.QueryRow(`SELECT document FROM snapshots WHERE namespace = ?`, Namespace).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (s *SQLite) Save(snap *model.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots (namespace, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(namespace) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		Namespace, string(doc), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
