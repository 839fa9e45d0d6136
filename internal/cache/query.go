// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	queryKeyPrefix = "cms:"

	// DefaultQueryTTL is how long a CMS response stays cached.
	DefaultQueryTTL = time.Minute
)

// QueryCache caches raw CMS GraphQL payloads keyed by operation and
// variables. Keys are hashed since variable sets can be long.
type QueryCache struct {
	ks keyspace
}

// NewQueryCache creates a response cache backed by the given Valkey client.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl == 0 {
		ttl = DefaultQueryTTL
	}
	return &QueryCache{ks: keyspace{client: client, prefix: queryKeyPrefix, ttl: ttl}}
}

// Get returns a cached payload.
func (qc *QueryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return qc.ks.get(ctx, hashKey(key))
}

// Set stores a payload.
func (qc *QueryCache) Set(ctx context.Context, key string, data []byte) {
	qc.ks.set(ctx, hashKey(key), data)
}

// InvalidateAll drops every cached payload.
func (qc *QueryCache) InvalidateAll(ctx context.Context) {
	if deleted := qc.ks.invalidateAll(ctx); deleted > 0 {
		slog.Info("cms response cache cleared", "deleted", deleted)
	}
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
