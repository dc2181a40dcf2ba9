package kvstore

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&Entry{}))
	fixed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return NewGormStore(conn, func() time.Time { return fixed })
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "fatura:"), mr
}

func TestStoreBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"redis": func(t *testing.T) Store {
			s, _ := newRedisStore(t)
			return s
		},
		"gorm": func(t *testing.T) Store { return newGormStore(t) },
	}

	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := build(t)

			_, err := store.Get(ctx, "invoice_defaults")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "invoice_defaults", []byte(`{"currency":"USD"}`)))
			value, err := store.Get(ctx, "invoice_defaults")
			require.NoError(t, err)
			assert.JSONEq(t, `{"currency":"USD"}`, string(value))

			require.NoError(t, store.Set(ctx, "invoice_defaults", []byte(`{"currency":"EUR"}`)))
			value, err = store.Get(ctx, "invoice_defaults")
			require.NoError(t, err)
			assert.JSONEq(t, `{"currency":"EUR"}`, string(value))

			require.NoError(t, store.Delete(ctx, "invoice_defaults"))
			_, err = store.Get(ctx, "invoice_defaults")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Delete(ctx, "missing"))
		})
	}
}

func TestRedisStoreUsesPrefix(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, store.Set(context.Background(), "invoice_templates", []byte(`[]`)))

	assert.True(t, mr.Exists("fatura:invoice_templates"))
	assert.False(t, mr.Exists("invoice_templates"))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	value := []byte(`{"a":1}`)
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}
