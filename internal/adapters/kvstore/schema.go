package kvstore

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the key-value table. The statement is valid for both sqlite
// and postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createKVQuery := `
	CREATE TABLE IF NOT EXISTS kv_store (
		store_key TEXT PRIMARY KEY,
		store_value TEXT NOT NULL
	);
	`

	if _, err := tx.Exec(createKVQuery); err != nil {
		return fmt.Errorf("init schema: create kv_store: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
