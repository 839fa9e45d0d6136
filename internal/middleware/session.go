// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"pulsereport/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"
)

// SessionEnsurer finds or creates the visitor session for a request.
type SessionEnsurer interface {
	Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*session.Data, error)
}

// LoadSession makes sure every visitor has a session and stores it in the
// request context. Downstream handlers can access it via SessionFromCtx().
// A Valkey failure is logged and the request continues without a session.
func LoadSession(store SessionEnsurer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Ensure(r.Context(), w, r)
			if err != nil {
				slog.Warn("session unavailable", "error", err, "request_id", RequestIDFromCtx(r.Context()))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, data)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}
