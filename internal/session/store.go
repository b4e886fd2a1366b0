package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/healio-platform/healio-api/internal/config"
)

const revokedPrefix = "session:revoked:"

// Store tracks revoked token IDs. JWTs cannot be recalled once issued, so
// logout writes the token's jti here until the token would have expired
// anyway.
type Store struct {
	client *redis.Client
}

func NewStore(cfg *config.Config) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &Store{client: client}
}

func (s *Store) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedPrefix+jti, 1, ttl).Err()
}

func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
