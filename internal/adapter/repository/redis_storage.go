package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace/internal/domain/repository"
	apperrors "marketplace/pkg/errors"
)

type redisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisClient dials a Redis server with the pool settings used by every backend.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// NewRedisStorage stores every key as a plain string under "<prefix>:<key>".
func NewRedisStorage(client *redis.Client, prefix string) repository.Storage {
	return &redisStorage{
		client: client,
		prefix: prefix,
	}
}

func (s *redisStorage) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

func (s *redisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Internal("Failed to read from redis", err)
	}
	return v, true, nil
}

func (s *redisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return apperrors.Internal("Failed to write to redis", err)
	}
	return nil
}

func (s *redisStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return apperrors.Internal("Failed to delete from redis", err)
	}
	return nil
}
