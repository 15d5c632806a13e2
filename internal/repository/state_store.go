package repository

import (
	"context"
	"time"
)

// StateStore abstracts ephemeral key-value state, used here to cache derived
// views like the invite leaderboard. Implementations: Redis (production) or
// in-memory (local dev / single instance).
type StateStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns nil with no error when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
