package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const generationKeyPrefix = "token_generation:"

// RedisGenerationStore keeps token generations in Redis so multiple gateway
// instances agree on which tokens are still live.
type RedisGenerationStore struct {
	client *redis.Client
}

func NewRedisGenerationStore(addr string) *RedisGenerationStore {
	return &RedisGenerationStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

func (s *RedisGenerationStore) Current(ctx context.Context, username string) (int64, error) {
	generation, err := s.client.Get(ctx, generationKeyPrefix+username).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not read token generation: %v", err)
	}
	return generation, nil
}

func (s *RedisGenerationStore) Bump(ctx context.Context, username string) (int64, error) {
	generation, err := s.client.Incr(ctx, generationKeyPrefix+username).Result()
	if err != nil {
		return 0, fmt.Errorf("could not bump token generation: %v", err)
	}
	return generation, nil
}
