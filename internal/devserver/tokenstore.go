package devserver

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore tracks revoked bearer tokens until they would have expired
// anyway.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	Revoked(ctx context.Context, token string) (bool, error)
}

// MemoryTokenStore keeps revocations in process memory. Good enough for a
// single dev server process and for tests.
type MemoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryTokenStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) Revoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(s.revoked, token)
		return false, nil
	}
	return true, nil
}

// RedisTokenStore keeps revocations in redis so several dev server
// processes can share them.
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

const revokedKeyPrefix = "auth:revoked:"

func (s *RedisTokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err()
}

func (s *RedisTokenStore) Revoked(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
