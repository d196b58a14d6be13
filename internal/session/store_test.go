package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb, ttl), mr
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)
}

func TestGetUnknownToken(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	userID, ok, err := store.Get(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, userID)
}

func TestTokensAreUnique(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	a, err := store.Create(ctx, 1)
	require.NoError(t, err)
	b, err := store.Create(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// Both resolve independently.
	ua, ok, err := store.Get(ctx, a)
	require.NoError(t, err)
	assert.True(t, ok)
	ub, ok, err := store.Get(ctx, b)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ua, ub)
}

func TestGetExpiredToken(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRefreshExtendsTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	mr.FastForward(50 * time.Second)

	ok, err := store.Refresh(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	// Past the original deadline but within the refreshed one.
	mr.FastForward(50 * time.Second)

	_, found, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRefreshUnknownToken(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)

	ok, err := store.Refresh(context.Background(), "gone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDestroy(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 9)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, token))

	_, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Destroying again is a no-op.
	require.NoError(t, store.Destroy(ctx, token))
}

func TestZeroTTLNeverExpires(t *testing.T) {
	store, mr := newTestStore(t, 0)
	ctx := context.Background()

	token, err := store.Create(ctx, 3)
	require.NoError(t, err)

	mr.FastForward(365 * 24 * time.Hour)

	userID, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(3), userID)

	// Refresh on a persistent session reports existence.
	ok, err = store.Refresh(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCorruptEntryTreatedAsMiss(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	mr.Set("session:bad", "not-a-number")

	_, ok, err := store.Get(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, ok)

	// The corrupt entry is removed.
	assert.False(t, mr.Exists("session:bad"))
}
