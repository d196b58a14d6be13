package cache

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

type payload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestAsideCachesLoaderResult(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (*payload, error) {
		calls++
		return &payload{ID: 7, Name: "ada"}, nil
	}

	got, err := Aside(ctx, UserKey(7), UserTTL, loader)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Name)
	assert.Equal(t, 1, calls)

	got, err = Aside(ctx, UserKey(7), UserTTL, loader)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Name)
	assert.Equal(t, 1, calls)
}

func TestAsideExpiry(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (*payload, error) {
		calls++
		return &payload{ID: 7}, nil
	}

	_, err := Aside(ctx, UserKey(7), time.Minute, loader)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = Aside(ctx, UserKey(7), time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestAsideLoaderErrorNotCached(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	boom := errors.New("db down")
	_, err := Aside(ctx, UserKey(1), UserTTL, func(context.Context) (*payload, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := Aside(ctx, UserKey(1), UserTTL, func(context.Context) (*payload, error) {
		return &payload{ID: 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
}

func TestAsideCorruptEntry(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(3), "{not json"))

	got, err := Aside(ctx, UserKey(3), UserTTL, func(context.Context) (*payload, error) {
		return &payload{ID: 3, Name: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
}

func TestAsideNilClient(t *testing.T) {
	SetClient(nil)

	got, err := Aside(context.Background(), UserKey(9), UserTTL, func(context.Context) (*payload, error) {
		return &payload{ID: 9}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), got.ID)
}

func TestInvalidateProfileFanout(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(ProfileKey(5, 0), "{}"))
	require.NoError(t, mr.Set(ProfileKey(5, 2), "{}"))
	require.NoError(t, mr.Set(ProfileKey(6, 2), "{}"))

	InvalidateProfile(ctx, 5)

	assert.False(t, mr.Exists(ProfileKey(5, 0)))
	assert.False(t, mr.Exists(ProfileKey(5, 2)))
	assert.True(t, mr.Exists(ProfileKey(6, 2)))
}

func TestInvalidatePostsListDropsAllPages(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(PostsListKey(20, 0), "[]"))
	require.NoError(t, mr.Set(PostsListKey(20, 20), "[]"))
	require.NoError(t, mr.Set(PostKey(1), "{}"))

	InvalidatePostsList(ctx)

	assert.False(t, mr.Exists(PostsListKey(20, 0)))
	assert.False(t, mr.Exists(PostsListKey(20, 20)))
	assert.True(t, mr.Exists(PostKey(1)))
}

func TestInvalidateUserDropsRecordAndProfiles(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(5), "{}"))
	require.NoError(t, mr.Set(ProfileKey(5, 1), "{}"))

	InvalidateUser(ctx, 5)

	assert.False(t, mr.Exists(UserKey(5)))
	assert.False(t, mr.Exists(ProfileKey(5, 1)))
}
