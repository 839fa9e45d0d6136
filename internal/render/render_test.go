package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pulsereport/internal/models"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	rn, err := New(Options{
		SiteName:  "Pulse Report",
		SiteURL:   "https://pulse.example/",
		MediaBase: "https://cms.example",
		Now:       func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return rn
}

func ptr[T any](v T) *T { return &v }

func article(slug string) models.Article {
	return models.Article{
		DocumentID:      "doc-" + slug,
		Title:           "Title " + slug,
		Slug:            slug,
		PublicationDate: "2026-03-10T10:00:00Z",
	}
}

func articles(n int) []models.Article {
	out := make([]models.Article, n)
	for i := range out {
		out[i] = article(string(rune('a' + i)))
	}
	return out
}

func TestNew(t *testing.T) {
	rn := newTestRenderer(t)

	for _, name := range []string{"home", "category", "article", "page", "error"} {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("expected template %q to be parsed", name)
		}
	}
	for _, name := range []string{"base", "partials"} {
		if _, ok := rn.templates[name]; ok {
			t.Errorf("%s.html should not be registered as a page", name)
		}
	}
}

func TestTitleAndCanonical(t *testing.T) {
	rn := newTestRenderer(t)

	if got := rn.Title("Tech"); got != "Tech | Pulse Report" {
		t.Errorf("Title = %q", got)
	}
	if got := rn.Title(""); got != "Pulse Report" {
		t.Errorf("Title(\"\") = %q", got)
	}
	if got := rn.Canonical("/category/tech"); got != "https://pulse.example/category/tech" {
		t.Errorf("Canonical = %q", got)
	}

	bare, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := bare.Canonical("/x"); got != "" {
		t.Errorf("Canonical without site URL = %q, want empty", got)
	}
}

func TestCard(t *testing.T) {
	rn := newTestRenderer(t)

	t.Run("normal article defaults source", func(t *testing.T) {
		c := rn.Card(article("go"))
		if c.SourceName != DefaultSourceName {
			t.Errorf("SourceName = %q, want %q", c.SourceName, DefaultSourceName)
		}
		if c.TimeAgo != "2 hours ago" {
			t.Errorf("TimeAgo = %q", c.TimeAgo)
		}
		if c.Href != "/article/go" || c.External {
			t.Errorf("Href = %q External = %v", c.Href, c.External)
		}
	})

	t.Run("media and source icon", func(t *testing.T) {
		a := article("img")
		a.FeaturedImage = &models.Image{URL: "/uploads/a.jpg", AlternativeText: ptr("A picture")}
		a.Source = &models.Source{Name: "Wire", Icon: &models.Image{URL: "/uploads/wire.png"}}
		c := rn.Card(a)
		if c.ImageURL != "https://cms.example/uploads/a.jpg" || c.ImageAlt != "A picture" {
			t.Errorf("image = %q %q", c.ImageURL, c.ImageAlt)
		}
		if c.SourceIcon != "https://cms.example/uploads/wire.png" || c.IconAlt != "Wire Logo" {
			t.Errorf("icon = %q %q", c.SourceIcon, c.IconAlt)
		}
	})

	t.Run("advertisement links out without time", func(t *testing.T) {
		a := article("ad")
		a.IsAdvertisement = ptr(true)
		a.ExternalURL = ptr(" https://sponsor.example ")
		c := rn.Card(a)
		if !c.External || c.Href != "https://sponsor.example" {
			t.Errorf("Href = %q External = %v", c.Href, c.External)
		}
		if c.TimeAgo != "" {
			t.Errorf("TimeAgo = %q, want empty", c.TimeAgo)
		}
		if c.Attribution != SponsoredLabel {
			t.Errorf("Attribution = %q", c.Attribution)
		}
	})

	t.Run("malformed date degrades", func(t *testing.T) {
		a := article("bad")
		a.PublicationDate = "not a date"
		if c := rn.Card(a); c.TimeAgo != "" {
			t.Errorf("TimeAgo = %q, want empty", c.TimeAgo)
		}
	})
}

func TestTabs(t *testing.T) {
	rn := newTestRenderer(t)

	if tabs := rn.Tabs(nil, ""); tabs != nil {
		t.Errorf("Tabs(nil) = %v, want nil", tabs)
	}

	tabs := rn.Tabs([]models.Category{{Name: "Tech", Slug: "tech"}, {Name: "World", Slug: "world"}}, "tech")
	if len(tabs) != 3 {
		t.Fatalf("len(tabs) = %d, want 3", len(tabs))
	}
	if tabs[0].Name != "Home" || tabs[0].Active {
		t.Errorf("first tab = %+v", tabs[0])
	}
	if !tabs[1].Active || tabs[2].Active {
		t.Errorf("active flags = %v %v", tabs[1].Active, tabs[2].Active)
	}
}

func TestHero(t *testing.T) {
	rn := newTestRenderer(t)

	if h := rn.Hero(nil); h.Lead != nil {
		t.Error("Hero(nil) should have no lead")
	}
	h := rn.Hero(articles(5))
	if h.Lead == nil || h.Lead.Href != "/article/a" {
		t.Fatalf("Lead = %+v", h.Lead)
	}
	if len(h.Side) != 2 {
		t.Errorf("len(Side) = %d, want 2", len(h.Side))
	}
}

func TestFeed(t *testing.T) {
	rn := newTestRenderer(t)

	f := rn.Feed(articles(10), 3)
	if f.Columns != 3 {
		t.Errorf("Columns = %d", f.Columns)
	}
	if len(f.Slots) == 0 || f.Slots[0].Kind != "carousel" || len(f.Slots[0].Cards) != 6 {
		t.Fatalf("first slot = %+v", f.Slots[0])
	}
}

func TestPageFullAndHTMX(t *testing.T) {
	rn := newTestRenderer(t)
	data := func() *PageData {
		return &PageData{
			Title:       rn.Title("About"),
			Description: "About us",
			Canonical:   rn.Canonical("/pages/about-us"),
			Data:        StaticView{Title: "About", Body: "Hello **world**"},
		}
	}

	t.Run("full page", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/pages/about-us", nil)
		rn.Page(w, r, http.StatusOK, "page", data())

		body := w.Body.String()
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		for _, want := range []string{
			"<title>About | Pulse Report</title>",
			`<link rel="canonical" href="https://pulse.example/pages/about-us">`,
			"<strong>world</strong>",
			`href="/pages/terms-of-service"`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
	})

	t.Run("htmx fragment", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/pages/about-us", nil)
		r.Header.Set("HX-Request", "true")
		rn.Page(w, r, http.StatusOK, "page", data())

		body := w.Body.String()
		if strings.Contains(body, "<html") {
			t.Error("HTMX response should not contain the layout")
		}
		if !strings.Contains(body, "<h1>About</h1>") {
			t.Errorf("fragment missing heading: %s", body)
		}
	})
}

func TestMarkdownDropsRawHTML(t *testing.T) {
	rn := newTestRenderer(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/pages/x", nil)
	rn.Page(w, r, http.StatusOK, "page", &PageData{
		Data: StaticView{Title: "X", Body: "<script>alert(1)</script>\n\ntext"},
	})
	if strings.Contains(w.Body.String(), "<script>alert") {
		t.Error("raw HTML from the CMS body was rendered")
	}
}

func TestError(t *testing.T) {
	rn := newTestRenderer(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/category/nope", nil)
	rn.Error(w, r, http.StatusNotFound, `Category "nope" not found.`)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Category &#34;nope&#34; not found.") {
		t.Errorf("body missing message: %s", w.Body.String())
	}
}

func TestPartialFeedSection(t *testing.T) {
	rn := newTestRenderer(t)
	cats := []models.Category{{Name: "Tech", Slug: "tech"}}

	tests := []struct {
		name    string
		section FeedSection
		want    []string
		notWant []string
	}{
		{
			name:    "loading polls feed",
			section: FeedSection{Tabs: rn.Tabs(cats, "tech"), Loading: true, CSRFToken: "tok"},
			want:    []string{`hx-get="/feed"`, "Loading articles...", `name="csrf_token" value="tok"`, `aria-current="page"`},
		},
		{
			name:    "error",
			section: FeedSection{Err: "boom"},
			want:    []string{"Error: boom"},
			notWant: []string{`hx-get="/feed"`, `class="tabs"`},
		},
		{
			name:    "empty",
			section: FeedSection{Empty: true},
			want:    []string{"No articles found for this category."},
		},
		{
			name:    "articles",
			section: FeedSection{Feed: rn.Feed(articles(2), 2)},
			want:    []string{`class="grid cols-2"`, `href="/article/a"`, `href="/article/b"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/feed", nil)
			rn.Partial(w, r, http.StatusOK, "feed_section", tt.section)

			body := w.Body.String()
			for _, s := range tt.want {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %q", s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(body, s) {
					t.Errorf("body should not contain %q", s)
				}
			}
		})
	}
}

func TestAdCardMarkup(t *testing.T) {
	rn := newTestRenderer(t)
	ad := article("ad")
	ad.IsAdvertisement = ptr(true)
	ad.ExternalURL = ptr("https://sponsor.example")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/feed", nil)
	rn.Partial(w, r, http.StatusOK, "feed", rn.Feed([]models.Article{ad}, 1))

	body := w.Body.String()
	for _, want := range []string{`href="https://sponsor.example"`, `target="_blank"`, `rel="sponsored noopener"`, "Sponsored"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBytesOmitsCSRFToken(t *testing.T) {
	rn := newTestRenderer(t)
	data := &PageData{CSRFToken: "secret", Data: StaticView{Title: "T"}}
	body, err := rn.Bytes("page", data)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(body), "secret") {
		t.Error("cached page bytes contain a CSRF token")
	}
}
