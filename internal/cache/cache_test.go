// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, catalogKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestCatalogCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCatalogCache(client, 1*time.Minute)
	ctx := context.Background()

	payload := []byte(`[{"id":"x"}]`)
	cc.Set(ctx, PostsKey(), payload)

	got, ok := cc.Get(ctx, PostsKey())
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload: got %q, want %q", got, payload)
	}
}

func TestCatalogCacheMiss(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCatalogCache(client, 1*time.Minute)

	if _, ok := cc.Get(context.Background(), "nonexistent"); ok {
		t.Error("expected cache miss")
	}
}

func TestCatalogCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCatalogCache(client, 1*time.Minute)
	ctx := context.Background()

	cc.Set(ctx, PostsKey(), []byte("a"))
	cc.Set(ctx, CategoriesKey(), []byte("b"))
	cc.Set(ctx, PostKey("some-id"), []byte("c"))

	cc.InvalidateAll(ctx)

	for _, key := range []string{PostsKey(), CategoriesKey(), PostKey("some-id")} {
		if _, ok := cc.Get(ctx, key); ok {
			t.Errorf("key %q survived InvalidateAll", key)
		}
	}
}

func TestCatalogCacheTTLExpiry(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewCatalogCache(client, 1*time.Second)
	ctx := context.Background()

	cc.Set(ctx, PostsKey(), []byte("short-lived"))
	time.Sleep(1100 * time.Millisecond)

	if _, ok := cc.Get(ctx, PostsKey()); ok {
		t.Error("expected entry to expire")
	}
}
