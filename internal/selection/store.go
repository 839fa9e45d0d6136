// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package selection holds the per-visitor category selection: which tab is
// active, the article list shown under it, and the fetch that refreshes that
// list when the tab changes.
//
// A Store is the single writer of its State. Every mutation goes through an
// action under the store mutex, and fetches run on goroutines owned by the
// store. Each fetch is numbered; a result that arrives after a newer fetch
// was started is discarded, so the last selected category always wins.
package selection

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"pulsereport/internal/cms"
	"pulsereport/internal/metrics"
	"pulsereport/internal/models"
)

// FallbackErrorMessage is shown when a fetch fails without a CMS message.
const FallbackErrorMessage = "Failed to load articles."

// DefaultFetchTimeout bounds a single store fetch.
const DefaultFetchTimeout = 15 * time.Second

// Fetcher loads the article list for a category, or the latest articles
// when slug is nil.
type Fetcher interface {
	ArticlesForCategory(ctx context.Context, slug *string) ([]models.Article, error)
}

// State is a snapshot of a store. A nil SelectedSlug is the Home tab.
type State struct {
	SelectedSlug *string
	Articles     []models.Article
	Loading      bool
	Err          string
	HasFetched   bool
	Categories   []models.Category
}

// Selected returns the selected slug, with "" for Home.
func (s State) Selected() string {
	if s.SelectedSlug == nil {
		return models.HomeSlug
	}
	return *s.SelectedSlug
}

// Store is one visitor's selection state.
type Store struct {
	fetcher Fetcher
	timeout time.Duration

	mu      sync.Mutex
	state   State
	seq     uint64
	cancel  context.CancelFunc
	changed chan struct{}
	closed  bool

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithFetchTimeout bounds each fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewStore creates an empty store on the Home tab.
func NewStore(f Fetcher, opts ...Option) *Store {
	ctx, stop := context.WithCancel(context.Background())
	s := &Store{
		fetcher: f,
		timeout: DefaultFetchTimeout,
		changed: make(chan struct{}),
		ctx:     ctx,
		stop:    stop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetAllCategories replaces the category list.
func (s *Store) SetAllCategories(categories []models.Category) {
	s.Dispatch(SetAllCategories{Categories: categories})
}

// SetInitialArticles hydrates the article list from a server-side fetch. It
// only takes effect on a store that has never fetched, holds no articles
// and has no fetch in flight, and reports whether it did.
func (s *Store) SetInitialArticles(articles []models.Article) bool {
	return s.Dispatch(SetInitialArticles{Articles: articles})
}

// SetSelectedCategorySlug switches tabs and starts a fetch for the new tab,
// superseding any fetch in flight. Selecting the current tab does nothing.
func (s *Store) SetSelectedCategorySlug(slug *string) bool {
	return s.Dispatch(SelectCategory{Slug: slug})
}

// FetchArticlesForCategory starts a fetch. It is dropped, and returns false,
// while another fetch is loading.
func (s *Store) FetchArticlesForCategory(slug *string) bool {
	return s.Dispatch(FetchArticles{Slug: slug})
}

// Dispatch applies an action and reports whether it changed the store.
func (s *Store) Dispatch(a Action) bool {
	if a == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	switch a := a.(type) {
	case SetAllCategories:
		s.state.Categories = slices.Clone(a.Categories)
		s.notifyLocked()
		return true

	case SetInitialArticles:
		if s.state.HasFetched || len(s.state.Articles) > 0 || s.state.Loading {
			return false
		}
		s.state.Articles = nonNil(slices.Clone(a.Articles))
		s.state.HasFetched = true
		s.state.Loading = false
		s.state.Err = ""
		s.notifyLocked()
		return true

	case SelectCategory:
		slug := normalize(a.Slug)
		if sameSlug(s.state.SelectedSlug, slug) {
			return false
		}
		s.state.SelectedSlug = slug
		s.state.HasFetched = false
		s.startFetchLocked(slug)
		return true

	case FetchArticles:
		if s.state.Loading {
			metrics.StoreFetchesTotal.WithLabelValues(metrics.OutcomeDropped).Inc()
			slog.Debug("fetch dropped, another is loading", "slug", deref(a.Slug))
			return false
		}
		s.startFetchLocked(normalize(a.Slug))
		return true
	}

	slog.Warn("unknown selection action", "action", a.ActionName())
	return false
}

// startFetchLocked cancels the current fetch, if any, and starts a new one.
func (s *Store) startFetchLocked(slug *string) {
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	s.cancel = cancel

	s.state.Loading = true
	s.state.Err = ""
	s.state.HasFetched = false
	s.notifyLocked()

	s.wg.Add(1)
	go s.run(ctx, cancel, seq, slug)
}

func (s *Store) run(ctx context.Context, cancel context.CancelFunc, seq uint64, slug *string) {
	defer s.wg.Done()
	defer cancel()

	articles, err := s.fetcher.ArticlesForCategory(ctx, slug)
	s.finish(seq, slug, articles, err)
}

func (s *Store) finish(seq uint64, slug *string, articles []models.Article, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq != s.seq {
		metrics.StoreFetchesTotal.WithLabelValues(metrics.OutcomeSuperseded).Inc()
		return
	}

	s.cancel = nil
	s.state.Loading = false
	s.state.HasFetched = true
	if err != nil {
		slog.Error("failed to fetch articles for category", "slug", deref(slug), "error", err)
		metrics.StoreFetchesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		s.state.Articles = []models.Article{}
		s.state.Err = cms.UserMessage(err, FallbackErrorMessage)
	} else {
		metrics.StoreFetchesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
		s.state.Articles = nonNil(articles)
		s.state.Err = ""
	}
	s.notifyLocked()
}

func (s *Store) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.SelectedSlug = normalize(s.state.SelectedSlug)
	st.Articles = nonNil(slices.Clone(s.state.Articles))
	st.Categories = slices.Clone(s.state.Categories)
	return st
}

// Wait blocks until no fetch is loading or ctx is done.
func (s *Store) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		if !s.state.Loading {
			s.mu.Unlock()
			return nil
		}
		ch := s.changed
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels any fetch in flight and waits for it to return. A closed
// store ignores further actions.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stop()
	s.state.Loading = false
	s.notifyLocked()
	s.mu.Unlock()

	s.wg.Wait()
}

// normalize maps the empty slug to nil (Home) and copies anything else so
// the store never aliases a caller's string pointer.
func normalize(slug *string) *string {
	if slug == nil || *slug == models.HomeSlug {
		return nil
	}
	v := *slug
	return &v
}

func sameSlug(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(slug *string) string {
	if slug == nil {
		return models.HomeSlug
	}
	return *slug
}

func nonNil(a []models.Article) []models.Article {
	if a == nil {
		return []models.Article{}
	}
	return a
}
