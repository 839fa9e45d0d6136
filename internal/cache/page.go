// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed full-page cache for responses that do
// not depend on the visitor: static pages, the sitemap and robots.txt.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pulsereport/internal/metrics"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page caching in Valkey.
type PageCache struct {
	ks keyspace
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{ks: keyspace{client: client, prefix: pageKeyPrefix, ttl: ttl}}
}

// Get retrieves a cached page body.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, ok := pc.ks.get(ctx, key)
	metrics.PageCacheTotal.WithLabelValues(metrics.CacheResult(ok)).Inc()
	if ok {
		slog.Debug("page cache hit", "key", key)
	}
	return val, ok
}

// Set stores a rendered page body with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, body []byte) {
	pc.ks.set(ctx, key, body)
}

// InvalidatePage removes a single page from the cache.
func (pc *PageCache) InvalidatePage(ctx context.Context, key string) {
	pc.ks.del(ctx, key)
	slog.Debug("page cache invalidated", "key", key)
}

// InvalidateAll removes all cached pages.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	if deleted := pc.ks.invalidateAll(ctx); deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
}

// StaticPageKey returns the cache key for a static page.
func StaticPageKey(slug string) string {
	return "pages/" + slug
}

// SitemapKey returns the cache key for the sitemap.
func SitemapKey() string {
	return "sitemap.xml"
}

// RobotsKey returns the cache key for robots.txt.
func RobotsKey() string {
	return "robots.txt"
}
