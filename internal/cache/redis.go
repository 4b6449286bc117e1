package cache

import (
	"context"
	"errors"

	"github.com/Domenick1991/railbooking/config"
	"github.com/Domenick1991/railbooking/internal/repository"
	"github.com/redis/go-redis/v9"
)

// RedisBlobStore keeps blobs as plain redis strings without expiry.
type RedisBlobStore struct {
	client *redis.Client
	prefix string
}

var _ repository.BlobStore = (*RedisBlobStore)(nil)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisBlobStore(client *redis.Client, prefix string) *RedisBlobStore {
	return &RedisBlobStore{client: client, prefix: prefix}
}

func (c *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.blobKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, err
	}
	return data, nil
}

func (c *RedisBlobStore) Put(ctx context.Context, key string, data []byte) error {
	return c.client.Set(ctx, c.blobKey(key), data, 0).Err()
}

func (c *RedisBlobStore) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.blobKey(key)).Err()
}

func (c *RedisBlobStore) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisBlobStore) blobKey(key string) string {
	return c.prefix + "blob:" + key
}
