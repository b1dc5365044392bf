package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NonceStore implements ports.NonceStore using Redis SET NX.
type NonceStore struct {
	client goredis.UniversalClient
	prefix string
}

// NewNonceStore creates a new Redis-backed nonce store.
func NewNonceStore(client goredis.UniversalClient) *NonceStore {
	return &NonceStore{
		client: client,
		prefix: "ptr:nonce:",
	}
}

// CheckAndSet atomically checks if a nonce exists for the caller and sets it
// if not. Returns true if the nonce is new (valid), false if already used.
// Caller addresses are keyed case-insensitively so a checksummed and a
// lower-case header cannot replay the same nonce.
func (s *NonceStore) CheckAndSet(ctx context.Context, caller string, nonce string, ttl time.Duration) (bool, error) {
	key := s.prefix + strings.ToLower(caller) + ":" + nonce
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis nonce check: %w", err)
	}
	return result == "OK", nil
}
