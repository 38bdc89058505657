package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v2"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultLookupCacheTTL = 24 * time.Hour

	lookupKeyPrefix = "lookup:word:"
)

// LookupCache stores lookup results by lowercased word
type LookupCache interface {
	Get(ctx context.Context, word string) (*LookupResult, bool, error)
	Set(ctx context.Context, word string, r *LookupResult) error
}

// RedisLookupCache keeps lookup results in redis so they are shared between
// instances
type RedisLookupCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLookupCache(rdb *redis.Client, ttl time.Duration) *RedisLookupCache {
	if ttl <= 0 {
		ttl = DefaultLookupCacheTTL
	}

	return &RedisLookupCache{rdb: rdb, ttl: ttl}
}

func (c *RedisLookupCache) Get(ctx context.Context, word string) (*LookupResult, bool, error) {
	b, err := c.rdb.Get(ctx, lookupKeyPrefix+word).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to read cached lookup, %w", err)
	}

	var r LookupResult
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached lookup, %w", err)
	}

	return &r, true, nil
}

func (c *RedisLookupCache) Set(ctx context.Context, word string, r *LookupResult) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode lookup, %w", err)
	}

	if err := c.rdb.Set(ctx, lookupKeyPrefix+word, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache lookup, %w", err)
	}

	return nil
}

// MemoryLookupCache is the in-process fallback used when no redis address is
// configured
type MemoryLookupCache struct {
	c *ttlcache.Cache
}

func NewMemoryLookupCache(ttl time.Duration) *MemoryLookupCache {
	if ttl <= 0 {
		ttl = DefaultLookupCacheTTL
	}

	c := ttlcache.NewCache()
	c.SetTTL(ttl)
	c.SkipTTLExtensionOnHit(true)

	return &MemoryLookupCache{c: c}
}

func (c *MemoryLookupCache) Get(_ context.Context, word string) (*LookupResult, bool, error) {
	v, err := c.c.Get(word)
	if err != nil {
		if errors.Is(err, ttlcache.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return v.(*LookupResult), true, nil
}

func (c *MemoryLookupCache) Set(_ context.Context, word string, r *LookupResult) error {
	return c.c.Set(word, r)
}

// Close stops the cache's expiry goroutine
func (c *MemoryLookupCache) Close() error {
	return c.c.Close()
}
