// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.


package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"pulsereport/internal/middleware"
)

// maxWebhookBody bounds the webhook payload that is read for logging.
const maxWebhookBody = 1 << 20

// Invalidator drops every entry of a cache.
type Invalidator interface {
	InvalidateAll(ctx context.Context)
}

// Webhook handles CMS publish notifications by flushing the page and
// response caches, so edits show up before the cache TTL expires.
type Webhook struct {
	secret string
	caches []Invalidator
}

// NewWebhook creates the webhook handler. An empty secret disables it.
func NewWebhook(secret string, caches ...Invalidator) *Webhook {
	return &Webhook{secret: secret, caches: caches}
}

// webhookEvent is the part of the CMS webhook payload worth logging.
type webhookEvent struct {
	Event string `json:"event"`
	Model string `json:"model"`
}

// CMS authenticates the shared secret (Authorization: Bearer <secret>) and
// invalidates the caches.
func (h *Webhook) CMS(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" {
		http.NotFound(w, r)
		return
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) != 1 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var ev webhookEvent
	if err := json.NewDecoder(io.LimitReader(r.Body, maxWebhookBody)).Decode(&ev); err != nil && err != io.EOF {
		slog.Warn("webhook payload unreadable", "error", err)
	}

	for _, c := range h.caches {
		if c != nil {
			c.InvalidateAll(r.Context())
		}
	}
	slog.Info("caches invalidated by webhook", "event", ev.Event, "model", ev.Model, "request_id", middleware.RequestIDFromCtx(r.Context()))

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"invalidated"}`))
}
