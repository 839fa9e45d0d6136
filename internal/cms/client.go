// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cms is the GraphQL client for the headless CMS. Every fetcher
// returns typed records, nil for "not found", or an error that callers turn
// into a "could not load" message.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	graphql "github.com/hasura/go-graphql-client"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"pulsereport/internal/metrics"
	"pulsereport/internal/tracing"
)

// DefaultTimeout bounds a single GraphQL round trip.
const DefaultTimeout = 10 * time.Second

// Config locates the CMS.
type Config struct {
	URL     string // base URL; queries go to URL + "/graphql"
	Token   string // bearer token
	Timeout time.Duration
}

// ResponseCache stores raw GraphQL data payloads by query key.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
}

// Client runs the site's named GraphQL operations.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	gql        *graphql.Client
	breaker    *gobreaker.CircuitBreaker
	group      singleflight.Group
	cache      ResponseCache
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithResponseCache enables caching of successful query payloads.
func WithResponseCache(rc ResponseCache) Option {
	return func(c *Client) { c.cache = rc }
}

// New creates a client. A client with a missing URL or token is still
// usable: every fetch returns ErrNotConfigured.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		token:      strings.TrimSpace(cfg.Token),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.Configured() {
		auth := "Bearer " + c.token
		c.gql = graphql.NewClient(c.baseURL+"/graphql", c.httpClient).
			WithRequestModifier(func(r *http.Request) {
				r.Header.Set("Authorization", auth)
			})
	} else {
		slog.Warn("cms client not configured, all content fetches will fail", "has_url", c.baseURL != "", "has_token", c.token != "")
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cms",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		IsSuccessful: func(err error) bool {
			// A GraphQL error payload means the CMS answered.
			return err == nil || len(graphQLMessages(err)) > 0 || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "circuit", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// Configured reports whether both the endpoint and the token are set.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.token != ""
}

// BaseURL is the CMS origin, used to absolutize media paths.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// exec runs one named operation and decodes its data payload into out.
// Identical concurrent queries share one round trip; that shared call is
// detached from any single caller's cancellation and bounded by the HTTP
// client timeout instead.
func (c *Client) exec(ctx context.Context, op, query string, vars map[string]any, out any) (err error) {
	if !c.Configured() {
		slog.Error("cms fetch skipped: endpoint or token not set", "operation", op)
		return ErrNotConfigured
	}

	ctx, span := tracing.StartCMS(ctx, op)
	start := time.Now()
	defer func() {
		metrics.ObserveCMSQuery(op, err, time.Since(start))
		tracing.End(span, err)
	}()

	key := queryKey(op, vars)
	if c.cache != nil {
		data, hit := c.cache.Get(ctx, key)
		metrics.CMSResponseCache.WithLabelValues(metrics.CacheResult(hit)).Inc()
		if hit {
			return decode(op, data, out)
		}
	}

	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.breaker.Execute(func() (any, error) {
			return c.gql.ExecRaw(shared, query, vars)
		})
	})
	if err != nil {
		qerr := newQueryError(op, err)
		slog.Error("cms query failed", "operation", op, "error", qerr)
		return qerr
	}

	data, _ := v.([]byte)
	if err := decode(op, data, out); err != nil {
		return err
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, data)
	}
	return nil
}

func decode(op string, data []byte, out any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &QueryError{Op: op, Err: err}
	}
	return nil
}

// queryKey identifies an operation and its variables. json.Marshal sorts
// map keys, so equal variable sets produce equal keys.
func queryKey(op string, vars map[string]any) string {
	b, err := json.Marshal(vars)
	if err != nil {
		return op
	}
	return op + ":" + string(b)
}

// MediaURL turns a CMS media path into an absolute URL. Absolute and
// protocol-relative URLs pass through; an empty path yields "".
func MediaURL(base, path string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"), strings.HasPrefix(path, "//"):
		return path
	case base == "":
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
