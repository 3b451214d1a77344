package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisLocal backs one client's namespace with a Redis hash. Hash fields are
// the literal localStorage keys, so the key contract stays bit-exact.
type RedisLocal struct {
	rdb     *redis.Client
	hashKey string
}

func newRedisLocal(rdb *redis.Client, clientID string) *RedisLocal {
	return &RedisLocal{
		rdb:     rdb,
		hashKey: "nettrailer:client:" + clientID,
	}
}

func (r *RedisLocal) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.HGet(ctx, r.hashKey, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisLocal) SetItem(ctx context.Context, key, value string) error {
	return r.rdb.HSet(ctx, r.hashKey, key, value).Err()
}

func (r *RedisLocal) RemoveItem(ctx context.Context, key string) error {
	return r.rdb.HDel(ctx, r.hashKey, key).Err()
}

func (r *RedisLocal) Keys(ctx context.Context) ([]string, error) {
	return r.rdb.HKeys(ctx, r.hashKey).Result()
}

// RedisProvider hands out Redis-backed client stores.
type RedisProvider struct {
	rdb *redis.Client
}

func NewRedisProvider(rdb *redis.Client) *RedisProvider {
	return &RedisProvider{rdb: rdb}
}

func (p *RedisProvider) ForClient(clientID string) Local {
	if clientID == "" {
		return nil
	}
	return newRedisLocal(p.rdb, clientID)
}
