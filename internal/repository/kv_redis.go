package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	errs "trophyseeker/internal/errors"
)

type RedisKVStorage struct {
	client *redis.Client
}

func NewRedisKVStorage(client *redis.Client) *RedisKVStorage {
	return &RedisKVStorage{client: client}
}

func (r *RedisKVStorage) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.ErrKeyNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *RedisKVStorage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKVStorage) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisKVStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
