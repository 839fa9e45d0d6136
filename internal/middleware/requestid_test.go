// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromCtx(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if len(seen) != 36 {
			t.Errorf("generated id %q is not a UUID", seen)
		}
		if rr.Header().Get(RequestIDHeader) != seen {
			t.Error("response header does not echo the context id")
		}
	})

	t.Run("propagates the caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if seen != "abc-123" {
			t.Errorf("id = %q, want abc-123", seen)
		}
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", 500))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if len(seen) != 36 {
			t.Errorf("oversized id kept: %d chars", len(seen))
		}
	})
}
