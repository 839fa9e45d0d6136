// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	defer rl.Stop()

	now := time.Now()
	for i := range 3 {
		if !rl.allow("10.0.0.1", now) {
			t.Fatalf("request %d within burst rejected", i+1)
		}
	}
	if rl.allow("10.0.0.1", now) {
		t.Error("request beyond burst allowed")
	}
	if !rl.allow("10.0.0.2", now) {
		t.Error("other client throttled by first client's bucket")
	}

	// One token refills per second.
	if !rl.allow("10.0.0.1", now.Add(1100*time.Millisecond)) {
		t.Error("token not refilled after one second")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/tabs/select", nil)
		req.RemoteAddr = "192.168.1.9:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	if rr := send(); rr.Code != http.StatusNoContent {
		t.Fatalf("first request: got %d", rr.Code)
	}
	rr := send()
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("429 without Retry-After")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()

	now := time.Now()
	rl.allow("old", now.Add(-time.Hour))
	rl.allow("recent", now)
	rl.cleanup(now)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.clients["old"]; ok {
		t.Error("idle entry kept")
	}
	if _, ok := rl.clients["recent"]; !ok {
		t.Error("recent entry removed")
	}
}

func TestRateLimiterStopTwice(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Stop()
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{name: "forwarded chain", xff: "10.0.0.1, 172.16.0.1", remoteAddr: "192.168.1.1:1234", want: "10.0.0.1"},
		{name: "forwarded single", xff: " 10.0.0.3 ", remoteAddr: "192.168.1.1:1234", want: "10.0.0.3"},
		{name: "real ip", xri: "10.0.0.2", remoteAddr: "192.168.1.1:1234", want: "10.0.0.2"},
		{name: "remote addr", remoteAddr: "192.168.1.1:1234", want: "192.168.1.1"},
		{name: "remote addr without port", remoteAddr: "192.168.1.1", want: "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
