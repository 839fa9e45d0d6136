// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.


// Package router wires HTTP routes and middleware for the public site.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulsereport/internal/handlers"
	"pulsereport/internal/middleware"
	"pulsereport/internal/tracing"
	"pulsereport/web"
)

// Deps are the handlers and middleware dependencies of the router.
type Deps struct {
	Sessions    middleware.SessionEnsurer
	Public      *handlers.Public
	Webhook     *handlers.Webhook
	RateLimiter *middleware.RateLimiter
}

// New builds the chi router with global middleware and all routes.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(tracing.Middleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	static, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	r.Get("/sitemap.xml", d.Public.Sitemap)
	r.Get("/robots.txt", d.Public.Robots)

	r.With(limit(d.RateLimiter)).Post("/webhooks/cms", d.Webhook.CMS)

	// Visitor pages carry a session and CSRF protection.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		if d.Sessions != nil {
			r.Use(middleware.LoadSession(d.Sessions))
		}

		r.Get("/", d.Public.Home)
		r.Get("/feed", d.Public.Feed)
		r.Get("/category/{slug}", d.Public.Category)
		r.Get("/article/{slug}", d.Public.Article)
		r.Get("/pages/{slug}", d.Public.StaticPage)

		r.Group(func(r chi.Router) {
			r.Use(limit(d.RateLimiter))
			r.Post("/tabs/select", d.Public.SelectTab)
			r.Post("/viewport", d.Public.Viewport)
		})
	})

	return r
}

// limit returns the rate limiting middleware, or a pass-through without a
// limiter.
func limit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
