package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"respawn-map-service/internal/platform/obs"
	"strings"
)

// SQLStore is a postgres-backed key-value store (pgx driver).
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "kv.postgres.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return "", false, errors.New("get kv: key must not be empty")
	}

	q := `
	SELECT store_value
    FROM kv_store
    WHERE store_key = $1;
	`

	var value string
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get kv %q: query kv_store table: %w", key, err)
	}

	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "kv.postgres.Set")(&err)

	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("set kv: key must not be empty")
	}

	q := `
	INSERT INTO kv_store (store_key, store_value)
    VALUES ($1, $2)
	ON CONFLICT (store_key) DO UPDATE
	SET store_value = EXCLUDED.store_value;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("set kv %q: %w", key, err)
	}

	return nil
}
