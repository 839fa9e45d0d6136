// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// an in-memory CMS, page cache and session updater behind a chi router.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"pulsereport/internal/cms"
	"pulsereport/internal/middleware"
	"pulsereport/internal/models"
	"pulsereport/internal/render"
	"pulsereport/internal/selection"
	"pulsereport/internal/session"
)

var errCMSDown = errors.New("cms unavailable")

// fakeCMS serves canned records. A nil map entry means "not found".
type fakeCMS struct {
	mu sync.Mutex

	homepage   *cms.HomepageData
	categories map[string]*cms.CategoryPageData
	articles   map[string]*cms.ArticlePageData
	pages      map[string]*models.StaticPage
	slugs      *cms.Slugs
	err        error

	calls    map[string]int
	lastPage int
}

func newFakeCMS() *fakeCMS {
	return &fakeCMS{
		categories: map[string]*cms.CategoryPageData{},
		articles:   map[string]*cms.ArticlePageData{},
		pages:      map[string]*models.StaticPage{},
		calls:      map[string]int{},
	}
}

func (f *fakeCMS) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.err
}

func (f *fakeCMS) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeCMS) Homepage(context.Context) (*cms.HomepageData, error) {
	if err := f.record("homepage"); err != nil {
		return nil, err
	}
	return f.homepage, nil
}

func (f *fakeCMS) CategoryPage(_ context.Context, slug string, page, pageSize int) (*cms.CategoryPageData, error) {
	if err := f.record("category"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.lastPage = page
	f.mu.Unlock()
	data, ok := f.categories[slug]
	if !ok {
		return nil, nil
	}
	cp := *data
	cp.Page = page
	cp.PageSize = pageSize
	return &cp, nil
}

func (f *fakeCMS) Article(_ context.Context, slug string) (*cms.ArticlePageData, error) {
	if err := f.record("article"); err != nil {
		return nil, err
	}
	return f.articles[slug], nil
}

func (f *fakeCMS) StaticPage(_ context.Context, slug string) (*models.StaticPage, error) {
	if err := f.record("page"); err != nil {
		return nil, err
	}
	return f.pages[slug], nil
}

func (f *fakeCMS) AllSlugs(context.Context) (*cms.Slugs, error) {
	if err := f.record("slugs"); err != nil {
		return nil, err
	}
	return f.slugs, nil
}

// fakeFetcher answers store fetches with one article named after the slug.
type fakeFetcher struct {
	mu    sync.Mutex
	slugs []string
}

func (f *fakeFetcher) ArticlesForCategory(_ context.Context, slug *string) ([]models.Article, error) {
	name := "latest"
	if slug != nil {
		name = *slug
	}
	f.mu.Lock()
	f.slugs = append(f.slugs, name)
	f.mu.Unlock()
	return []models.Article{testArticle(name + "-story")}, nil
}

func (f *fakeFetcher) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.slugs...)
}

// memoryPages is an in-memory PageCache.
type memoryPages struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryPages() *memoryPages {
	return &memoryPages{entries: map[string][]byte{}}
}

func (m *memoryPages) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.entries[key]
	return b, ok
}

func (m *memoryPages) Set(_ context.Context, key string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = body
}

func (m *memoryPages) InvalidateAll(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string][]byte{}
}

func (m *memoryPages) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// recordingSessions remembers the last saved session.
type recordingSessions struct {
	mu    sync.Mutex
	saved *session.Data
}

func (s *recordingSessions) Update(_ context.Context, data *session.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *data
	s.saved = &cp
	return nil
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	CMS      *fakeCMS
	Fetcher  *fakeFetcher
	Stores   *selection.Registry
	Pages    *memoryPages
	Sessions *recordingSessions
	Public   *Public
	Router   chi.Router
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	rn, err := render.New(render.Options{
		SiteName: "Pulse Report",
		SiteURL:  "https://pulse.example",
		Now:      func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		CMS:      newFakeCMS(),
		Fetcher:  &fakeFetcher{},
		Pages:    newMemoryPages(),
		Sessions: &recordingSessions{},
	}
	env.Stores = selection.NewRegistry(env.Fetcher, time.Hour)
	t.Cleanup(env.Stores.Close)

	env.Public = NewPublic(env.CMS, env.Stores, rn, env.Pages, env.Sessions, PublicConfig{
		SiteURL:        "https://pulse.example",
		DefaultColumns: 3,
		SelectWait:     2 * time.Second,
		Now:            func() time.Time { return testNow },
	})

	r := chi.NewRouter()
	r.Get("/", env.Public.Home)
	r.Get("/feed", env.Public.Feed)
	r.Post("/tabs/select", env.Public.SelectTab)
	r.Post("/viewport", env.Public.Viewport)
	r.Get("/category/{slug}", env.Public.Category)
	r.Get("/article/{slug}", env.Public.Article)
	r.Get("/pages/{slug}", env.Public.StaticPage)
	r.Get("/sitemap.xml", env.Public.Sitemap)
	r.Get("/robots.txt", env.Public.Robots)
	env.Router = r

	return env
}

// do runs a request through the router, with sess attached when non-nil.
func (e *testEnv) do(req *http.Request, sess *session.Data) *httptest.ResponseRecorder {
	if sess != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.SessionKey, sess))
	}
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

func get(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func testArticle(slug string) models.Article {
	return models.Article{
		DocumentID:      "doc-" + slug,
		Title:           "Title " + slug,
		Slug:            slug,
		PublicationDate: "2026-03-10T11:00:00Z",
	}
}

func testArticles(prefix string, n int) []models.Article {
	out := make([]models.Article, n)
	for i := range out {
		out[i] = testArticle(prefix + "-" + string(rune('a'+i)))
	}
	return out
}
