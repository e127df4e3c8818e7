package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newMiniRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	store, err := NewRedisStore(RedisConfig{Address: " " + server.Addr() + " ", Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, server
}

func TestRedisStoreSetGetDelete(t *testing.T) {
	store, server := newMiniRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	_, ok, err := store.Get(ctx, "team:view:a")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "team:view:a", []byte(`{"name":"A"}`), 0))
	require.NoError(t, store.Set(ctx, "team:view:b", []byte(`{"name":"B"}`), 0))

	raw, err := server.Get("pitwall:team:view:a")
	require.NoError(t, err)
	require.Equal(t, `{"name":"A"}`, raw)
	require.Zero(t, server.TTL("pitwall:team:view:a"))

	value, ok, err := store.Get(ctx, "team:view:a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`{"name":"A"}`), value)

	require.NoError(t, store.Delete(ctx, "team:view:a", "team:view:b", "team:view:missing"))
	require.False(t, server.Exists("pitwall:team:view:a"))
	require.False(t, server.Exists("pitwall:team:view:b"))
	require.NoError(t, store.Delete(ctx))
}

func TestRedisStoreTTL(t *testing.T) {
	store, server := newMiniRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "team:view:a", []byte("x"), time.Minute))
	require.Equal(t, time.Minute, server.TTL("pitwall:team:view:a"))

	require.NoError(t, store.Set(ctx, "team:view:b", []byte("y"), -time.Second))
	require.Zero(t, server.TTL("pitwall:team:view:b"))

	server.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, "team:view:a")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = store.Get(ctx, "team:view:b")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisStoreJSONAndFailures(t *testing.T) {
	store, server := newMiniRedisStore(t)
	ctx := context.Background()

	type view struct {
		Name string `json:"name"`
	}
	require.NoError(t, SetJSON(ctx, store, "team:view:a", view{Name: "Apex"}, time.Minute))

	var out view
	ok, err := GetJSON(ctx, store, "team:view:a", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Apex", out.Name)

	server.SetError("LOADING")
	_, _, err = store.Get(ctx, "team:view:a")
	require.Error(t, err)
	require.Error(t, store.Ping(ctx))
}
