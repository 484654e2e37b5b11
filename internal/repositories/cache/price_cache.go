package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	versionKey = "dpa:price:version"
	// BumpChannel receives the new version whenever the cache is invalidated.
	BumpChannel = "dpa.price.bump"
)

// RedisPriceCache caches computed product prices in Redis. Every key carries
// the current version, so Invalidate only has to increment it.
type RedisPriceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPriceCache instantiates the cache helper.
func NewRedisPriceCache(client *redis.Client, ttl time.Duration) *RedisPriceCache {
	return &RedisPriceCache{client: client, ttl: ttl}
}

var _ portsrepo.PriceCache = (*RedisPriceCache)(nil)

// Version returns the current cache version, initialising it when missing.
func (c *RedisPriceCache) Version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		// SetNX so concurrent first readers agree on the version
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey composes the versioned Redis key for key.
func (c *RedisPriceCache) BuildKey(ctx context.Context, key string) (string, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return "", fmt.Errorf("price cache version: %w", err)
	}
	return fmt.Sprintf("dpa:%s:v%d", key, ver), nil
}

// FetchJSON loads a cached value or populates it using the loader. Loader
// errors are returned as is and nothing is cached.
func (c *RedisPriceCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("price cache: loader required")
	}
	redisKey, err := c.BuildKey(ctx, key)
	if err != nil {
		return err
	}

	payload, err := c.client.Get(ctx, redisKey).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return fmt.Errorf("price cache get %s: %w", key, err)
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("price cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, redisKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("price cache set %s: %w", key, err)
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate bumps the version and publishes it on BumpChannel. Old entries
// expire with their TTL.
func (c *RedisPriceCache) Invalidate(ctx context.Context) error {
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return fmt.Errorf("price cache bump: %w", err)
	}
	return c.client.Publish(ctx, BumpChannel, strconv.FormatInt(ver, 10)).Err()
}
