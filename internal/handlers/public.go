// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.


// Package handlers implements the HTTP handlers of the public site. Page
// handlers fetch from the CMS, hand the results to the renderer and map
// failures to user-facing messages: a missing record is a 404, a CMS error
// is a 502 and the structured error goes to the log.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pulsereport/internal/cache"
	"pulsereport/internal/cms"
	"pulsereport/internal/grid"
	"pulsereport/internal/middleware"
	"pulsereport/internal/models"
	"pulsereport/internal/pagination"
	"pulsereport/internal/render"
	"pulsereport/internal/selection"
	"pulsereport/internal/session"
	"pulsereport/internal/slug"
)

// User-facing messages.
const (
	msgCategoryLoadFailed = "Failed to load category data."
	msgArticleNotFound    = "Article not found."
	msgArticleLoadFailed  = "Failed to load article."
	msgPageNotFound       = "Page not found."
	msgPageLoadFailed     = "Failed to load page."
)

// CMS is the subset of the CMS client the page handlers use.
type CMS interface {
	Homepage(ctx context.Context) (*cms.HomepageData, error)
	CategoryPage(ctx context.Context, slug string, page, pageSize int) (*cms.CategoryPageData, error)
	Article(ctx context.Context, slug string) (*cms.ArticlePageData, error)
	StaticPage(ctx context.Context, slug string) (*models.StaticPage, error)
	AllSlugs(ctx context.Context) (*cms.Slugs, error)
}

// Stores resolves the selection store of a visitor session.
type Stores interface {
	Get(id string) *selection.Store
}

// PageCache stores rendered responses that do not depend on the visitor.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
	InvalidateAll(ctx context.Context)
}

// SessionUpdater persists session changes.
type SessionUpdater interface {
	Update(ctx context.Context, data *session.Data) error
}

// PublicConfig carries the settings of the public handlers.
type PublicConfig struct {
	SiteURL        string
	DefaultColumns int
	SelectWait     time.Duration // how long a tab switch waits for its fetch
	Now            func() time.Time
}

// Public groups handlers for the public-facing site. Responses that do not
// depend on the visitor are stored in the page cache; the homepage feed is
// driven by the visitor's selection store.
type Public struct {
	cms      CMS
	stores   Stores
	renderer *render.Renderer
	pages    PageCache
	sessions SessionUpdater
	cfg      PublicConfig
}

// NewPublic creates a new Public handler group. pages may be nil, which
// disables page caching.
func NewPublic(c CMS, stores Stores, rn *render.Renderer, pages PageCache, sessions SessionUpdater, cfg PublicConfig) *Public {
	if cfg.DefaultColumns == 0 {
		cfg.DefaultColumns = 3
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Public{
		cms:      c,
		stores:   stores,
		renderer: rn,
		pages:    pages,
		sessions: sessions,
		cfg:      cfg,
	}
}

// Home renders the hero section and the selection-driven feed. The store is
// hydrated with the initial articles the first time the visitor arrives.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.RequestIDFromCtx(ctx)

	data, err := p.cms.Homepage(ctx)
	if err != nil {
		slog.Error("homepage fetch failed", "error", err, "request_id", reqID)
	}

	view := render.HomeView{}
	var section render.FeedSection

	if data != nil {
		view.Hero = p.renderer.Hero(data.Hero)
	}

	if store := p.store(r); store != nil {
		if data != nil {
			store.SetAllCategories(data.Categories)
			store.SetInitialArticles(data.Initial)
		}
		st := store.Snapshot()
		if data == nil && !st.HasFetched && !st.Loading {
			st.Err = cms.UserMessage(err, selection.FallbackErrorMessage)
		}
		section = p.section(r, st)
	} else {
		// Without a session the feed is the initial list and tabs are inert.
		st := selection.State{HasFetched: data != nil}
		if data != nil {
			st.Articles = data.Initial
			st.Categories = data.Categories
		} else {
			st.Err = cms.UserMessage(err, selection.FallbackErrorMessage)
		}
		section = p.section(r, st)
	}
	view.Section = section

	p.renderer.Page(w, r, http.StatusOK, "home", &render.PageData{
		Title:       p.renderer.SiteName(),
		Description: "The latest news from " + p.renderer.SiteName() + ".",
		Canonical:   p.renderer.Canonical("/"),
		Data:        view,
	})
}

// Feed renders the homepage feed section from the visitor's store. HTMX
// polls it while a fetch is in flight.
func (p *Public) Feed(w http.ResponseWriter, r *http.Request) {
	store := p.store(r)
	if store == nil {
		redirectHome(w, r)
		return
	}
	p.settle(r.Context(), store)
	p.renderer.Partial(w, r, http.StatusOK, "feed_section", p.section(r, store.Snapshot()))
}

// SelectTab changes the visitor's category selection. HTMX gets the updated
// feed section; plain form posts are redirected to the homepage.
func (p *Public) SelectTab(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	value := r.PostFormValue("slug")
	if value != models.HomeSlug && !slug.Valid(value) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	store := p.store(r)
	if store == nil {
		redirectHome(w, r)
		return
	}

	var selected *string
	if value != models.HomeSlug {
		selected = &value
	}
	store.SetSelectedCategorySlug(selected)

	if !render.IsHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	p.settle(r.Context(), store)
	p.renderer.Partial(w, r, http.StatusOK, "feed_section", p.section(r, store.Snapshot()))
}

// Viewport records the grid column count for the reported viewport width.
// When the count changes, HX-Refresh asks the page to reload with the new
// layout.
func (p *Public) Viewport(w http.ResponseWriter, r *http.Request) {
	width, err := strconv.Atoi(r.PostFormValue("width"))
	if err != nil || width <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || p.sessions == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	current := p.columns(r)
	next := grid.ColumnsForWidth(width, p.cfg.DefaultColumns)
	if sess.Columns != next {
		sess.Columns = next
		if err := p.sessions.Update(r.Context(), sess); err != nil {
			slog.Warn("session update failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		}
	}
	if next != current {
		w.Header().Set("HX-Refresh", "true")
	}
	w.WriteHeader(http.StatusNoContent)
}

// Category renders one page of a category listing.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")
	notFound := fmt.Sprintf("Category %q not found.", slugParam)

	if !slug.Valid(slugParam) {
		p.renderer.Error(w, r, http.StatusNotFound, notFound)
		return
	}

	page := pagination.ParsePage(r.URL.Query().Get("page"))
	data, err := p.cms.CategoryPage(ctx, slugParam, page, pagination.DefaultPageSize)
	if err != nil {
		slog.Error("category fetch failed", "error", err, "slug", slugParam, "page", page, "request_id", middleware.RequestIDFromCtx(ctx))
		p.renderer.Error(w, r, http.StatusBadGateway, loadFailed(err, msgCategoryLoadFailed))
		return
	}
	if data == nil {
		p.renderer.Error(w, r, http.StatusNotFound, notFound)
		return
	}

	if store := p.store(r); store != nil {
		store.SetAllCategories(data.Categories)
	}

	basePath := "/category/" + slugParam
	view := render.CategoryView{
		Name:        data.Category.Name,
		Description: data.Category.DescriptionOr(""),
		Feed:        p.renderer.Feed(data.Articles, p.columns(r)),
		Empty:       len(data.Articles) == 0 && page == 1,
		Pages:       pagination.NewLinks(basePath, page, data.HasNextPageGuess),
	}

	p.renderer.Page(w, r, http.StatusOK, "category", &render.PageData{
		Title:       p.renderer.Title(data.Category.Name),
		Description: data.Category.DescriptionOr("Latest " + data.Category.Name + " news on " + p.renderer.SiteName() + "."),
		Canonical:   p.renderer.Canonical(pagination.PageHref(basePath, page)),
		Data:        view,
	})
}

// Article renders an article with its related stories.
func (p *Public) Article(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	if !slug.Valid(slugParam) {
		p.renderer.Error(w, r, http.StatusNotFound, msgArticleNotFound)
		return
	}

	data, err := p.cms.Article(ctx, slugParam)
	if err != nil {
		slog.Error("article fetch failed", "error", err, "slug", slugParam, "request_id", middleware.RequestIDFromCtx(ctx))
		p.renderer.Error(w, r, http.StatusBadGateway, loadFailed(err, msgArticleLoadFailed))
		return
	}
	if data == nil {
		p.renderer.Error(w, r, http.StatusNotFound, msgArticleNotFound)
		return
	}

	a := data.Article
	title := a.Title
	if a.SEOTitle != nil && *a.SEOTitle != "" {
		title = *a.SEOTitle
	}
	description := a.ExcerptOr("")
	if a.SEODescription != nil && *a.SEODescription != "" {
		description = *a.SEODescription
	}

	p.renderer.Page(w, r, http.StatusOK, "article", &render.PageData{
		Title:       p.renderer.Title(title),
		Description: description,
		Canonical:   p.renderer.Canonical("/article/" + a.Slug),
		Data:        p.renderer.Article(a, data.Related),
	})
}

// StaticPage renders an editorial page. Rendered pages are cached.
func (p *Public) StaticPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	if !slug.Valid(slugParam) {
		p.renderer.Error(w, r, http.StatusNotFound, msgPageNotFound)
		return
	}

	key := cache.StaticPageKey(slugParam)
	if body, ok := p.cacheGet(ctx, key); ok {
		render.WriteCached(w, body)
		return
	}

	page, err := p.cms.StaticPage(ctx, slugParam)
	if err != nil {
		slog.Error("static page fetch failed", "error", err, "slug", slugParam, "request_id", middleware.RequestIDFromCtx(ctx))
		p.renderer.Error(w, r, http.StatusBadGateway, loadFailed(err, msgPageLoadFailed))
		return
	}
	if page == nil {
		p.renderer.Error(w, r, http.StatusNotFound, msgPageNotFound)
		return
	}

	body, err := p.renderer.Bytes("page", &render.PageData{
		Title:       p.renderer.Title(page.DisplayTitle()),
		Description: page.Description(p.renderer.SiteName()),
		Canonical:   p.renderer.Canonical("/pages/" + page.Slug),
		Data:        render.StaticView{Title: page.Title, Body: page.Body},
	})
	if err != nil {
		slog.Error("render static page failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.cacheSet(ctx, key, body)
	render.WriteCached(w, body)
}

// section converts a store snapshot into the feed section view.
func (p *Public) section(r *http.Request, st selection.State) render.FeedSection {
	fs := render.FeedSection{
		Tabs:      p.renderer.Tabs(st.Categories, st.Selected()),
		Loading:   st.Loading,
		Err:       st.Err,
		CSRFToken: middleware.CSRFToken(r),
	}
	if !st.Loading && st.Err == "" {
		fs.Feed = p.renderer.Feed(st.Articles, p.columns(r))
		fs.Empty = st.HasFetched && len(st.Articles) == 0
	}
	return fs
}

// store returns the visitor's selection store, or nil without a session.
func (p *Public) store(r *http.Request) *selection.Store {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || p.stores == nil {
		return nil
	}
	return p.stores.Get(sess.ID)
}

// settle waits a bounded time for an in-flight fetch so the response can
// show its result instead of the loading state.
func (p *Public) settle(ctx context.Context, store *selection.Store) {
	if p.cfg.SelectWait <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, p.cfg.SelectWait)
	defer cancel()
	_ = store.Wait(ctx)
}

// columns returns the grid column count recorded for the visitor.
func (p *Public) columns(r *http.Request) int {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.Columns > 0 {
		return grid.ClampColumns(sess.Columns)
	}
	return grid.ClampColumns(p.cfg.DefaultColumns)
}

func (p *Public) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if p.pages == nil {
		return nil, false
	}
	return p.pages.Get(ctx, key)
}

func (p *Public) cacheSet(ctx context.Context, key string, body []byte) {
	if p.pages != nil {
		p.pages.Set(ctx, key, body)
	}
}

// loadFailed picks the message for a failed page load. A missing CMS
// configuration is reported as such; everything else is generic.
func loadFailed(err error, fallback string) string {
	if errors.Is(err, cms.ErrNotConfigured) {
		return cms.NotConfiguredMessage
	}
	return fallback
}

// redirectHome sends the browser to the homepage, via HX-Redirect for HTMX.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	if render.IsHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
