package session

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis so they survive process restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, token string) (uint, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return uint(userID), nil
}

func (s *RedisStore) Put(ctx context.Context, token string, userID uint) error {
	// 0 expiration: sessions end only on explicit logout
	return s.client.Set(ctx, keyPrefix+token, strconv.FormatUint(uint64(userID), 10), 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
