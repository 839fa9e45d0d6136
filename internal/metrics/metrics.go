// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsereport_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulsereport_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pulsereport_http_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)
)

// CMS client metrics.
var (
	CMSQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulsereport_cms_query_duration_seconds",
			Help:    "GraphQL query duration in seconds by operation and outcome",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "outcome"},
	)

	CMSResponseCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsereport_cms_response_cache_total",
			Help: "CMS response cache lookups by result",
		},
		[]string{"result"},
	)
)

// Selection store and page cache metrics.
var (
	StoreFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsereport_store_fetches_total",
			Help: "Selection store fetches by outcome",
		},
		[]string{"outcome"},
	)

	StoresActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pulsereport_stores_active",
			Help: "Number of live per-visitor selection stores",
		},
	)

	PageCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsereport_page_cache_total",
			Help: "Rendered page cache lookups by result",
		},
		[]string{"result"},
	)
)

// Store fetch outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"
	OutcomeDropped    = "dropped"
)

// ObserveCMSQuery records the duration of one GraphQL operation.
func ObserveCMSQuery(operation string, err error, d time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	CMSQueryDuration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}

// CacheResult converts a lookup hit flag to a label value.
func CacheResult(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
