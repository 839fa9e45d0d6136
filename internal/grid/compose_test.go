package grid

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pulsereport/internal/models"
)

func makeArticles(n int) []models.Article {
	out := make([]models.Article, n)
	for i := range out {
		out[i] = models.Article{
			DocumentID: fmt.Sprintf("doc-%d", i),
			Title:      fmt.Sprintf("Article %d", i),
			Slug:       fmt.Sprintf("article-%d", i),
		}
	}
	return out
}

func makeAd(a models.Article, url string) models.Article {
	yes := true
	a.IsAdvertisement = &yes
	a.ExternalURL = &url
	return a
}

// shape is a compact description of a plan: kind and source index per slot.
type shape struct {
	Kind  string
	Index int
	N     int
}

func shapeOf(p Plan) []shape {
	out := make([]shape, len(p.Slots))
	for i, s := range p.Slots {
		out[i] = shape{Kind: s.Kind.String(), Index: s.Index, N: len(s.Articles)}
	}
	return out
}

func TestComposeEmpty(t *testing.T) {
	p := Compose(nil, 3)
	if len(p.Slots) != 0 {
		t.Errorf("expected no slots, got %d", len(p.Slots))
	}
	if p.Columns != 3 {
		t.Errorf("Columns = %d, want 3", p.Columns)
	}
}

// TestComposeThreeColumnsNineArticles: carousel of the first six, then the
// related box holding articles 7-9.
func TestComposeThreeColumnsNineArticles(t *testing.T) {
	p := Compose(makeArticles(9), 3)

	want := []shape{
		{Kind: "carousel", Index: 0, N: 6},
		{Kind: "related", Index: 6, N: 3},
	}
	if diff := cmp.Diff(want, shapeOf(p)); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
	if p.Count(SlotCarousel) != 1 || p.Count(SlotRelated) != 1 || p.Count(SlotAd) != 0 {
		t.Errorf("counts: carousel=%d related=%d ad=%d", p.Count(SlotCarousel), p.Count(SlotRelated), p.Count(SlotAd))
	}
	got := []string{p.Slots[1].Articles[0].Slug, p.Slots[1].Articles[1].Slug, p.Slots[1].Articles[2].Slug}
	if diff := cmp.Diff([]string{"article-6", "article-7", "article-8"}, got); diff != "" {
		t.Errorf("related box articles (-want +got):\n%s", diff)
	}
	if p.Slots[0].Span != 3 {
		t.Errorf("carousel span = %d, want 3", p.Slots[0].Span)
	}
}

func TestComposeFourColumns(t *testing.T) {
	p := Compose(makeArticles(10), 4)

	want := []shape{
		{Kind: "article", Index: 0, N: 1},
		{Kind: "article", Index: 1, N: 1},
		{Kind: "article", Index: 2, N: 1},
		{Kind: "article", Index: 3, N: 1},
		{Kind: "related", Index: 4, N: 3},
		{Kind: "article", Index: 7, N: 1},
		{Kind: "article", Index: 8, N: 1},
		{Kind: "article", Index: 9, N: 1},
	}
	if diff := cmp.Diff(want, shapeOf(p)); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeEveryArticleRenderedOnce(t *testing.T) {
	for cols := 1; cols <= 4; cols++ {
		for n := 0; n <= 20; n++ {
			p := Compose(makeArticles(n), cols)
			seen := 0
			next := 0
			for _, s := range p.Slots {
				if s.Index != next {
					t.Fatalf("cols=%d n=%d: slot starts at %d, want %d", cols, n, s.Index, next)
				}
				seen += len(s.Articles)
				next += len(s.Articles)
			}
			if seen != n {
				t.Errorf("cols=%d n=%d: rendered %d articles", cols, n, seen)
			}
		}
	}
}

func TestComposeNoCarouselOrBoxOnNarrowLayouts(t *testing.T) {
	for _, cols := range []int{1, 2} {
		p := Compose(makeArticles(12), cols)
		if p.Count(SlotCarousel) != 0 {
			t.Errorf("cols=%d: unexpected carousel", cols)
		}
		if p.Count(SlotRelated) != 0 {
			t.Errorf("cols=%d: unexpected related box", cols)
		}
		if p.Count(SlotArticle) != 12 {
			t.Errorf("cols=%d: article slots = %d, want 12", cols, p.Count(SlotArticle))
		}
	}
}

func TestComposeCarouselNeedsSixArticles(t *testing.T) {
	p := Compose(makeArticles(5), 3)
	if p.Count(SlotCarousel) != 0 {
		t.Error("carousel rendered with only five articles")
	}
	// 3 cards fill row one; two remain, not enough for the box.
	if p.Count(SlotRelated) != 0 {
		t.Error("related box rendered without three remaining articles")
	}
}

func TestComposeCarouselOnlyForThreeColumns(t *testing.T) {
	p := Compose(makeArticles(12), 4)
	if p.Count(SlotCarousel) != 0 {
		t.Error("carousel rendered in four-column layout")
	}
}

func TestComposeRelatedBoxAtMostOnce(t *testing.T) {
	p := Compose(makeArticles(40), 4)
	if got := p.Count(SlotRelated); got != 1 {
		t.Errorf("related boxes = %d, want 1", got)
	}
}

func TestComposeRelatedBoxNeedsThreeArticles(t *testing.T) {
	p := Compose(makeArticles(6), 4)
	// Four cards fill the first row; only two remain.
	if p.Count(SlotRelated) != 0 {
		t.Error("related box rendered with two remaining articles")
	}
	if p.Count(SlotArticle) != 6 {
		t.Errorf("article slots = %d, want 6", p.Count(SlotArticle))
	}
}

// TestComposeAdvertisement verifies that a flagged article with a URL
// becomes an ad slot and a flagged article without one stays an article.
func TestComposeAdvertisement(t *testing.T) {
	articles := makeArticles(3)
	articles[1] = makeAd(articles[1], "https://sponsor.example/offer")
	yes := true
	articles[2].IsAdvertisement = &yes

	p := Compose(articles, 1)
	want := []shape{
		{Kind: "article", Index: 0, N: 1},
		{Kind: "ad", Index: 1, N: 1},
		{Kind: "article", Index: 2, N: 1},
	}
	if diff := cmp.Diff(want, shapeOf(p)); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeClampsColumns(t *testing.T) {
	if got := Compose(makeArticles(1), 0).Columns; got != 1 {
		t.Errorf("columns 0 -> %d, want 1", got)
	}
	if got := Compose(makeArticles(1), 9).Columns; got != 4 {
		t.Errorf("columns 9 -> %d, want 4", got)
	}
}

func TestComposeDoesNotAliasInput(t *testing.T) {
	articles := makeArticles(9)
	p := Compose(articles, 3)
	p.Slots[0].Articles = append(p.Slots[0].Articles, models.Article{Slug: "extra"})
	if articles[6].Slug != "article-6" {
		t.Error("appending to a slot overwrote the input slice")
	}
}

func TestColumnsForWidth(t *testing.T) {
	tests := []struct {
		width, fallback, want int
	}{
		{width: 0, fallback: 4, want: 4},
		{width: -1, fallback: 7, want: 4},
		{width: 320, fallback: 4, want: 1},
		{width: 639, fallback: 4, want: 1},
		{width: 640, fallback: 4, want: 2},
		{width: 767, fallback: 4, want: 2},
		{width: 768, fallback: 4, want: 3},
		{width: 1023, fallback: 4, want: 3},
		{width: 1024, fallback: 1, want: 4},
		{width: 2560, fallback: 1, want: 4},
	}
	for _, tt := range tests {
		if got := ColumnsForWidth(tt.width, tt.fallback); got != tt.want {
			t.Errorf("ColumnsForWidth(%d, %d) = %d, want %d", tt.width, tt.fallback, got, tt.want)
		}
	}
}
