// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.


// Package render provides HTML template rendering for the public site.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"pulsereport/internal/markdown"
	"pulsereport/internal/middleware"
)

//go:embed templates/public/*.html
var publicFS embed.FS

const templateDir = "templates/public"

// sharedTemplates are parsed into every page. partials.html also forms the
// standalone set used for HTMX fragments.
var sharedTemplates = []string{"base.html", "partials.html"}

// Options configure a Renderer.
type Options struct {
	SiteName  string
	SiteURL   string
	MediaBase string
	DevMode   bool
	Now       func() time.Time
}

// PageData holds all data passed to page templates.
type PageData struct {
	Title       string // full <title>, see Renderer.Title
	Description string
	Canonical   string
	SiteName    string
	CSRFToken   string
	Year        int
	Data        any // page-specific view
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
	partials  *template.Template
	funcMap   template.FuncMap
	opts      Options
}

// New parses all public templates from the embedded filesystem. Each page
// template is paired with the base layout and the shared partials.
func New(opts Options) (*Renderer, error) {
	if opts.SiteName == "" {
		opts.SiteName = DefaultSourceName
	}
	r := &Renderer{
		templates: make(map[string]*template.Template),
		opts:      opts,
	}
	r.funcMap = template.FuncMap{
		// markdown renders a CMS body. Raw HTML in the source is dropped.
		"markdown": markdown.Render,
		"isDev": func() bool {
			return opts.DevMode
		},
	}

	entries, err := fs.ReadDir(publicFS, templateDir)
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	shared := make([]string, 0, len(sharedTemplates))
	for _, name := range sharedTemplates {
		shared = append(shared, path.Join(templateDir, name))
	}

	r.partials, err = template.New("partials.html").Funcs(r.funcMap).ParseFS(publicFS, path.Join(templateDir, "partials.html"))
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".html") || isShared(name) {
			continue
		}
		files := append(append([]string{}, shared...), path.Join(templateDir, name))
		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(publicFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

func isShared(name string) bool {
	for _, s := range sharedTemplates {
		if s == name {
			return true
		}
	}
	return false
}

// SiteName returns the configured site name.
func (rn *Renderer) SiteName() string {
	return rn.opts.SiteName
}

// Title formats a page title as "X | Site". An empty title yields the site
// name alone.
func (rn *Renderer) Title(title string) string {
	if title == "" {
		return rn.opts.SiteName
	}
	return title + " | " + rn.opts.SiteName
}

// Canonical returns the absolute URL of p on the public site, or "" when
// no site URL is configured.
func (rn *Renderer) Canonical(p string) string {
	if rn.opts.SiteURL == "" {
		return ""
	}
	return strings.TrimRight(rn.opts.SiteURL, "/") + p
}

// Page renders a full page or an HTMX partial, depending on the request
// headers. For HTMX requests, only the "content" block is sent.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	data.CSRFToken = middleware.CSRFToken(r)

	block := "base.html"
	if IsHTMX(r) {
		block = "content"
	}
	body, err := rn.execute(name, block, data)
	if err != nil {
		slog.Error("render page", "template", name, "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, body)
}

// Bytes renders the full layout of a page without a request, for pages
// that are stored in the page cache. The result carries no CSRF token.
func (rn *Renderer) Bytes(name string, data *PageData) ([]byte, error) {
	data.CSRFToken = ""
	return rn.execute(name, "base.html", data)
}

// Partial renders a named fragment from partials.html.
func (rn *Renderer) Partial(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := rn.partials.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("render partial", "template", name, "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

// Error renders the error page with a user-facing message.
func (rn *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	rn.Page(w, r, status, "error", &PageData{
		Title: rn.Title(http.StatusText(status)),
		Data:  message,
	})
}

// WriteCached writes a page body previously produced by Bytes.
func WriteCached(w http.ResponseWriter, body []byte) {
	writeHTML(w, http.StatusOK, body)
}

func (rn *Renderer) execute(name, block string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	data.SiteName = rn.opts.SiteName
	data.Year = rn.now().Year()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, block, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
