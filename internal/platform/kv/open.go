package kv

import (
	"context"
	"fmt"
	"respawn-map-service/internal/adapters/kvstore"
	"respawn-map-service/internal/config"
	"respawn-map-service/internal/platform/db"
	"respawn-map-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Open connects the key-value backend selected by c.KVBackend.
// The returned close func releases the underlying connection.
func Open(ctx context.Context, c config.Config) (ports.KeyValueStore, func() error, error) {
	noop := func() error { return nil }

	switch c.KVBackend {
	case config.BackendMemory:
		return kvstore.NewMemoryStore(nil), noop, nil

	case config.BackendFile:
		s, err := kvstore.NewFileStore(c.KVPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open kv: %w", err)
		}
		return s, noop, nil

	case config.BackendSqlite:
		sqlDB, err := db.OpenSQLite(c.KVPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open kv: %w", err)
		}
		if err := kvstore.InitSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("open kv: %w", err)
		}
		return kvstore.NewSqliteStore(sqlDB), sqlDB.Close, nil

	case config.BackendPostgres:
		sqlDB, err := db.Open(c.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open kv: %w", err)
		}
		if err := kvstore.InitSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("open kv: %w", err)
		}
		return kvstore.NewSQLStore(sqlDB), sqlDB.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("open kv: ping redis %q: %w", c.RedisAddr, err)
		}
		return kvstore.NewRedisStore(client, c.RedisPrefix), client.Close, nil

	case config.BackendBadger:
		bdb, err := kvstore.OpenBadger(c.KVPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open kv: %w", err)
		}
		return kvstore.NewBadgerStore(bdb), bdb.Close, nil
	}

	return nil, nil, fmt.Errorf("open kv: unknown backend %q", c.KVBackend)
}
