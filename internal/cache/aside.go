package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache lifetimes. Posts tolerate short staleness; profiles are rebuilt
// per viewer so they get an even shorter window.
const (
	PostTTL    = 60 * time.Second
	UserTTL    = 60 * time.Second
	ProfileTTL = 30 * time.Second
)

// Key builders. Keeping them in one place avoids typo'd keys scattered
// across repositories and makes invalidation auditable.

// PostsListKey is the cache key for a page of the global post feed. Only
// anonymous pages are cached; the feed carries viewer-relative like flags,
// so per-viewer results never share an entry.
func PostsListKey(limit, offset int) string {
	return fmt.Sprintf("posts:list:%d:%d", limit, offset)
}

// PostKey returns the cache key for a single post.
func PostKey(id uint) string {
	return fmt.Sprintf("posts:%d", id)
}

// UserKey returns the cache key for a user record.
func UserKey(id uint) string {
	return fmt.Sprintf("users:%d", id)
}

// ProfileKey returns the cache key for a user profile as seen by a viewer.
// viewerID 0 means an anonymous viewer.
func ProfileKey(userID, viewerID uint) string {
	return fmt.Sprintf("profile:%d:viewer:%d", userID, viewerID)
}

// Aside implements the cache-aside pattern: look in Redis first, fall back
// to the loader on miss or any cache failure, then store the result with a
// TTL. A nil client degrades to calling the loader directly.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (T, error)) (T, error) {
	rdb := GetClient()
	if rdb == nil {
		return loader(ctx)
	}

	raw, err := rdb.Get(ctx, key).Bytes()
	if err == nil {
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		// Corrupt entry; drop it and reload.
		rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		return loader(ctx)
	}

	val, err := loader(ctx)
	if err != nil {
		return val, err
	}

	if raw, jsonErr := json.Marshal(val); jsonErr == nil {
		rdb.Set(ctx, key, raw, ttl)
	}
	return val, nil
}

// Invalidate removes the given keys. Harmless when Redis is unavailable.
func Invalidate(ctx context.Context, keys ...string) {
	rdb := GetClient()
	if rdb == nil || len(keys) == 0 {
		return
	}
	rdb.Del(ctx, keys...)
}

// InvalidatePostsList drops every cached page of the global feed.
func InvalidatePostsList(ctx context.Context) {
	InvalidatePattern(ctx, "posts:list:*")
}

// InvalidateUser drops the cached user record and viewer-scoped profiles.
func InvalidateUser(ctx context.Context, id uint) {
	Invalidate(ctx, UserKey(id))
	InvalidateProfile(ctx, id)
}

// InvalidateProfile drops every viewer-scoped cache entry for a user.
func InvalidateProfile(ctx context.Context, userID uint) {
	InvalidatePattern(ctx, fmt.Sprintf("profile:%d:viewer:*", userID))
}

// InvalidatePattern removes all keys matching a glob pattern, used when a
// write fans out to an unknown set of viewer-scoped entries.
func InvalidatePattern(ctx context.Context, pattern string) {
	rdb := GetClient()
	if rdb == nil {
		return
	}
	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		rdb.Del(ctx, keys...)
	}
}
