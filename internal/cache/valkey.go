// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides Valkey (Redis-compatible) client initialization,
// the rendered page cache and the CMS response cache.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectOptions locate a Valkey server. URL wins over Host/Port/Password.
type ConnectOptions struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(o ConnectOptions) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", o.Host, o.Port),
		Password: o.Password,
		DB:       o.DB,
	}
	if o.URL != "" {
		parsed, err := redis.ParseURL(o.URL)
		if err != nil {
			return nil, fmt.Errorf("parse VALKEY_URL: %w", err)
		}
		opts = parsed
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}

// keyspace is a TTL'd set of keys under one prefix.
type keyspace struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (k keyspace) get(ctx context.Context, key string) ([]byte, bool) {
	val, err := k.client.Get(ctx, k.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("cache get error", "key", k.prefix+key, "error", err)
		return nil, false
	}
	return val, true
}

func (k keyspace) set(ctx context.Context, key string, data []byte) {
	if err := k.client.Set(ctx, k.prefix+key, data, k.ttl).Err(); err != nil {
		slog.Warn("cache set error", "key", k.prefix+key, "error", err)
	}
}

func (k keyspace) del(ctx context.Context, key string) {
	if err := k.client.Del(ctx, k.prefix+key).Err(); err != nil {
		slog.Warn("cache delete error", "key", k.prefix+key, "error", err)
	}
}

// invalidateAll removes every key under the prefix by scanning.
func (k keyspace) invalidateAll(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := k.client.Scan(ctx, cursor, k.prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("cache scan error", "prefix", k.prefix, "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := k.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("cache bulk delete error", "prefix", k.prefix, "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return deleted
}
