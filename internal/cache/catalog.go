// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// catalog.go provides a Valkey-backed cache for serialized catalog reads.
// List and get responses are stored as JSON so repeated reads skip the
// database; every successful mutation clears the whole catalog prefix.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// catalogKeyPrefix is the Valkey key prefix for cached catalog reads.
	catalogKeyPrefix = "catalog:"

	// DefaultCatalogTTL is how long a cached read stays valid. Short,
	// because invalidation already covers in-process mutations; the TTL
	// only bounds staleness from out-of-band writes.
	DefaultCatalogTTL = 1 * time.Minute
)

// CatalogCache stores serialized catalog responses in Valkey.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a catalog cache backed by the given Valkey client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl == 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns (nil, false) on miss or error;
// a broken cache degrades to reading the database, never to failure.
func (cc *CatalogCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, catalogKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("catalog cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a payload under key with the configured TTL.
func (cc *CatalogCache) Set(ctx context.Context, key string, payload []byte) {
	if err := cc.client.Set(ctx, catalogKeyPrefix+key, payload, cc.ttl).Err(); err != nil {
		slog.Warn("catalog cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached catalog read by scanning the prefix.
// Called after every successful mutation: posts, categories, and
// associations are interdependent, so any write can affect any read.
func (cc *CatalogCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, catalogKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("catalog cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("catalog cache delete error", "error", err)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return
		}
	}
}

// PostsKey returns the cache key for the full post list.
func PostsKey() string {
	return "posts"
}

// PostKey returns the cache key for a single post by id.
func PostKey(id string) string {
	return "post:" + id
}

// CategoriesKey returns the cache key for the category list.
func CategoriesKey() string {
	return "categories"
}
