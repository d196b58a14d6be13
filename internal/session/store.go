// Package session implements opaque session tokens backed by Redis.
//
// A session token is a random UUID handed to the browser in a cookie. The
// token carries no claims; the only authority is the Redis mapping from
// token to user ID, so revocation is a single DEL.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"atelier/internal/middleware"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store creates, resolves and revokes opaque session tokens.
type Store interface {
	// Create mints a new token for the user and persists it with the store TTL.
	Create(ctx context.Context, userID uint) (string, error)
	// Get resolves a token to a user ID. The second return is false when the
	// token is unknown or expired; that is not an error.
	Get(ctx context.Context, token string) (uint, bool, error)
	// Refresh extends the token's lifetime to a full TTL. Returns false when
	// the token no longer exists.
	Refresh(ctx context.Context, token string) (bool, error)
	// Destroy revokes the token. Revoking an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration // 0 means sessions never expire
}

// NewRedisStore returns a Store backed by the given Redis client.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return keyPrefix + token
}

func (s *redisStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	err := s.rdb.Set(ctx, sessionKey(token), strconv.FormatUint(uint64(userID), 10), s.ttl).Err()
	if err != nil {
		middleware.SessionOps.WithLabelValues("create", "error").Inc()
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	middleware.SessionOps.WithLabelValues("create", "ok").Inc()
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		middleware.SessionOps.WithLabelValues("get", "miss").Inc()
		return 0, false, nil
	}
	if err != nil {
		middleware.SessionOps.WithLabelValues("get", "error").Inc()
		return 0, false, fmt.Errorf("failed to resolve session: %w", err)
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		// A corrupt entry is as good as no session. Drop it.
		s.rdb.Del(ctx, sessionKey(token))
		middleware.SessionOps.WithLabelValues("get", "corrupt").Inc()
		return 0, false, nil
	}

	middleware.SessionOps.WithLabelValues("get", "hit").Inc()
	return uint(userID), true, nil
}

func (s *redisStore) Refresh(ctx context.Context, token string) (bool, error) {
	if s.ttl == 0 {
		// Sessions without expiry have nothing to refresh; report whether
		// the token still exists.
		n, err := s.rdb.Exists(ctx, sessionKey(token)).Result()
		if err != nil {
			return false, fmt.Errorf("failed to refresh session: %w", err)
		}
		return n > 0, nil
	}

	ok, err := s.rdb.Expire(ctx, sessionKey(token), s.ttl).Result()
	if err != nil {
		middleware.SessionOps.WithLabelValues("refresh", "error").Inc()
		return false, fmt.Errorf("failed to refresh session: %w", err)
	}
	if ok {
		middleware.SessionOps.WithLabelValues("refresh", "ok").Inc()
	} else {
		middleware.SessionOps.WithLabelValues("refresh", "miss").Inc()
	}
	return ok, nil
}

func (s *redisStore) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		middleware.SessionOps.WithLabelValues("destroy", "error").Inc()
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	middleware.SessionOps.WithLabelValues("destroy", "ok").Inc()
	return nil
}
