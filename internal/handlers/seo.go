// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.


package handlers

import (
	"log/slog"
	"net/http"

	"pulsereport/internal/cache"
	"pulsereport/internal/middleware"
	"pulsereport/internal/seo"
)

// Sitemap serves /sitemap.xml. When the CMS cannot list slugs the sitemap
// still contains the home URL, and the partial result is not cached.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if body, ok := p.cacheGet(ctx, cache.SitemapKey()); ok {
		writeXML(w, body)
		return
	}

	slugs, err := p.cms.AllSlugs(ctx)
	if err != nil {
		slog.Error("sitemap slugs fetch failed", "error", err, "request_id", middleware.RequestIDFromCtx(ctx))
	}

	body, encErr := seo.Sitemap(p.cfg.SiteURL, slugs, p.cfg.Now())
	if encErr != nil {
		slog.Error("sitemap encode failed", "error", encErr)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err == nil {
		p.cacheSet(ctx, cache.SitemapKey(), body)
	}
	writeXML(w, body)
}

// Robots serves /robots.txt.
func (p *Public) Robots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := p.cacheGet(ctx, cache.RobotsKey())
	if !ok {
		body = seo.Robots(p.cfg.SiteURL)
		p.cacheSet(ctx, cache.RobotsKey(), body)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(body)
}

func writeXML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}
