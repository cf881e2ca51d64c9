package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared cache used when several API instances should serve
// the same cached catalog. Everything stored through it is JSON.
type Redis struct {
	redisdb *redis.Client
	ttl     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedis(cfg RedisConfig) *Redis {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ttl := cfg.TTL

	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Redis{redisdb: redisdb, ttl: ttl}
}

// Ping checks redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.redisdb.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.redisdb.Close()
}

// GetJSON loads key into out and reports whether it was a hit. A missing
// key is not an error.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	b, err := r.redisdb.Get(ctx, key).Bytes()

	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}

	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, val any) error {
	b, err := json.Marshal(val)

	if err != nil {
		return err
	}

	return r.redisdb.Set(ctx, key, b, r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.redisdb.Del(ctx, key).Err()
}
