package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	rec := testRecord("s1", time.Now().Add(time.Hour))
	require.NoError(t, store.Set(ctx, rec))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.SessionID, got.SessionID)
	assert.Equal(t, rec.User, got.User)
	assert.True(t, rec.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "s1"))

	got, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_GetMissingReturnsNil(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)

	got, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_KeyPrefixAndTTL(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testRecord("s1", time.Now().Add(time.Hour))))

	require.True(t, mr.Exists("session:s1"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("session:s1").Seconds(), 5)
}

func TestRedisStore_ExpiredKeyVanishes(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testRecord("s1", time.Now().Add(14*24*time.Hour))))

	mr.FastForward(15 * 24 * time.Hour)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_SetPastExpiryDeletes(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testRecord("s1", time.Now().Add(time.Hour))))
	require.NoError(t, store.Set(ctx, testRecord("s1", time.Now().Add(-time.Second))))

	assert.False(t, mr.Exists("session:s1"))
}

func TestRedisStore_BackendFailureIsStoreError(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	mr.SetError("simulated outage")

	var storeErr *StoreError

	_, err := store.Get(ctx, "s1")
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "get", storeErr.Op)

	err = store.Set(ctx, testRecord("s1", time.Now().Add(time.Hour)))
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "set", storeErr.Op)

	err = store.Delete(ctx, "s1")
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "delete", storeErr.Op)
}

func TestRedisStore_SetMissingIDFails(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)

	err := store.Set(context.Background(), Record{ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)

	// Caller bug, not an outage.
	var storeErr *StoreError
	assert.False(t, errors.As(err, &storeErr))
}
