package redisstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidauth/fluidauth/core/session"
	"github.com/fluidauth/fluidauth/integration/database/redis"
	"github.com/fluidauth/fluidauth/integration/sessionstore/redisstore"
)

// newTestStore connects to the Redis named by TEST_REDIS_URL and skips the
// test when the variable is unset.
func newTestStore(t *testing.T) *redisstore.Store {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set; skipping Redis integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	client, err := redis.Connect(ctx, redis.Config{
		ConnectionURL: url,
		RetryAttempts: 1,
		RetryInterval: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.New(client, redisstore.WithPrefix("test-session:"))
}

func newRecord(d time.Duration) session.Record {
	return session.Record{
		ID:        uuid.NewString(),
		UserID:    "u-" + uuid.NewString(),
		ExpiresAt: time.Now().Add(d).Truncate(time.Millisecond),
	}
}

func TestStore_Lifecycle(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	rec := newRecord(time.Minute)
	require.NoError(t, store.Create(ctx, rec))
	t.Cleanup(func() { _ = store.Delete(ctx, rec.ID) })

	t.Run("duplicate create is rejected", func(t *testing.T) {
		require.ErrorIs(t, store.Create(ctx, rec), session.ErrDuplicateSession)
	})

	t.Run("get round trips the record", func(t *testing.T) {
		got, err := store.Get(ctx, rec.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.UserID, got.UserID)
		assert.WithinDuration(t, rec.ExpiresAt, got.ExpiresAt, time.Second)
	})

	t.Run("absent record yields nil without error", func(t *testing.T) {
		got, err := store.Get(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update replaces expiry", func(t *testing.T) {
		updated := rec
		updated.ExpiresAt = time.Now().Add(2 * time.Minute)
		require.NoError(t, store.Update(ctx, rec.ID, updated))

		got, err := store.Get(ctx, rec.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.WithinDuration(t, updated.ExpiresAt, got.ExpiresAt, time.Second)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		victim := newRecord(time.Minute)
		require.NoError(t, store.Create(ctx, victim))
		require.NoError(t, store.Delete(ctx, victim.ID))
		require.NoError(t, store.Delete(ctx, victim.ID))

		got, err := store.Get(ctx, victim.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_UpdateUpserts(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	rec := newRecord(time.Minute)
	require.NoError(t, store.Update(ctx, rec.ID, rec))
	t.Cleanup(func() { _ = store.Delete(ctx, rec.ID) })

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.UserID, got.UserID)
}

func TestStore_UpdateToPastExpiryDeletes(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	rec := newRecord(time.Minute)
	require.NoError(t, store.Create(ctx, rec))

	expired := rec
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Update(ctx, rec.ID, expired))

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CleanIsNoOp(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Clean(context.Background()))
}
