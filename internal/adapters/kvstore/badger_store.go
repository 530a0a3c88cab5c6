package kvstore

import (
	"context"
	"errors"
	"fmt"
	"respawn-map-service/internal/platform/obs"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is an embedded on-disk key-value store.
type BadgerStore struct {
	DB *badger.DB
}

// OpenBadger opens (or creates) a badger database in dir.
// An empty dir opens an in-memory database.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)
	opts.NumVersionsToKeep = 1
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", dir, err)
	}
	return db, nil
}

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{DB: db}
}

func (s *BadgerStore) Get(ctx context.Context, key string) (value string, found bool, err error) {
	defer obs.Time(ctx, "kv.badger.Get")(&err)

	err = s.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		b, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		value, found = string(b), true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("get kv %q: %w", key, err)
	}
	return value, found, nil
}

func (s *BadgerStore) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "kv.badger.Set")(&err)

	err = s.DB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set kv %q: %w", key, err)
	}
	return nil
}
