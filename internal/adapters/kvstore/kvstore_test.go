package kvstore

import (
	"context"
	"path/filepath"
	"respawn-map-service/internal/platform/db"
	"respawn-map-service/internal/ports"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.KeyValueStore = (*MemoryStore)(nil)
	_ ports.KeyValueStore = (*FileStore)(nil)
	_ ports.KeyValueStore = (*SqliteStore)(nil)
	_ ports.KeyValueStore = (*SQLStore)(nil)
	_ ports.KeyValueStore = (*RedisStore)(nil)
	_ ports.KeyValueStore = (*BadgerStore)(nil)
)

// exerciseStore runs the behaviour every KeyValueStore must share.
func exerciseStore(t *testing.T, s ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "respawn-list")
	require.NoError(t, err)
	assert.False(t, ok, "missing key must report not found")

	require.NoError(t, s.Set(ctx, "respawn-list", `[{"name":"A","lat":10,"lng":20}]`))
	v, ok, err := s.Get(ctx, "respawn-list")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"name":"A","lat":10,"lng":20}]`, v)

	require.NoError(t, s.Set(ctx, "respawn-list", `[]`))
	v, _, err = s.Get(ctx, "respawn-list")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v, "set must overwrite")

	require.NoError(t, s.Set(ctx, "coord-pre", ""))
	v, ok, err = s.Get(ctx, "coord-pre")
	require.NoError(t, err)
	assert.True(t, ok, "empty values are still present")
	assert.Equal(t, "", v)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(nil))
}

func TestMemoryStoreSeedIsCopied(t *testing.T) {
	seed := map[string]string{"coord-pre": "2"}
	s := NewMemoryStore(seed)
	seed["coord-pre"] = "9"

	v, ok, err := s.Get(context.Background(), "coord-pre")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kv.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)

	t.Run("reload from disk", func(t *testing.T) {
		reloaded, err := NewFileStore(path)
		require.NoError(t, err)
		v, ok, err := reloaded.Get(context.Background(), "respawn-list")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[]`, v)
	})
}

func TestSqliteStore(t *testing.T) {
	sqlDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, InitSchema(sqlDB))
	require.NoError(t, InitSchema(sqlDB), "schema init must be idempotent")

	exerciseStore(t, NewSqliteStore(sqlDB))
}

func TestSqliteStoreRejectsEmptyKey(t *testing.T) {
	sqlDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, InitSchema(sqlDB))

	s := NewSqliteStore(sqlDB)
	assert.Error(t, s.Set(context.Background(), " ", "x"))
	_, _, err = s.Get(context.Background(), "")
	assert.Error(t, err)
}

func TestNilDBStores(t *testing.T) {
	ctx := context.Background()
	_, _, err := NewSqliteStore(nil).Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, NewSQLStore(nil).Set(ctx, "k", "v"))
	assert.Error(t, InitSchema(nil))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := NewRedisStore(client, "respawn:")
	exerciseStore(t, s)

	raw, err := mr.Get("respawn:respawn-list")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw, "keys are namespaced by prefix")
}

func TestBadgerStore(t *testing.T) {
	bdb, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { bdb.Close() })

	exerciseStore(t, NewBadgerStore(bdb))
}

func TestBadgerStorePersistsOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	bdb, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, NewBadgerStore(bdb).Set(ctx, "selected-respawn-idx", "2"))
	require.NoError(t, bdb.Close())

	bdb, err = OpenBadger(dir)
	require.NoError(t, err)
	t.Cleanup(func() { bdb.Close() })

	v, ok, err := NewBadgerStore(bdb).Get(ctx, "selected-respawn-idx")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}
