package memory

import (
	"context"
	"strings"
	"sync"
	"time"
)

// NonceStore implements ports.NonceStore for single-process deployments
// running without Redis. Expired entries are swept lazily on insert.
type NonceStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewNonceStore() *NonceStore {
	return &NonceStore{entries: make(map[string]time.Time), now: time.Now}
}

func (s *NonceStore) CheckAndSet(ctx context.Context, caller string, nonce string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key := strings.ToLower(caller) + ":" + nonce
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if exp, ok := s.entries[key]; ok && now.Before(exp) {
		return false, nil
	}
	for k, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}
