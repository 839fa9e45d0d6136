// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cms

import (
	"context"
	"log/slog"

	"pulsereport/internal/models"
	"pulsereport/internal/pagination"
)

// Operation names, used for metrics, spans and cache keys.
const (
	OpHomepage         = "homepage"
	OpCategoryPage     = "category_page"
	OpPrimaryCategory  = "primary_category"
	OpArticle          = "article"
	OpArticleOnly      = "article_only"
	OpStaticPage       = "static_page"
	OpAllSlugs         = "all_slugs"
	OpArticlesCategory = "articles_by_category"
	OpLatestArticles   = "latest_articles"
)

// HomepageData is everything the home route renders on first load.
type HomepageData struct {
	Hero       []models.Article
	Initial    []models.Article
	Categories []models.Category
}

// Homepage fetches hero articles, the initial feed and the category list in
// one round trip.
func (c *Client) Homepage(ctx context.Context) (*HomepageData, error) {
	var resp struct {
		Homepage *struct {
			HeroArticles []models.Article `json:"hero_articles"`
		} `json:"homepage"`
		InitialArticles []models.Article  `json:"initialArticles"`
		AllCategories   []models.Category `json:"allCategories"`
	}
	vars := map[string]any{
		"heroLimit":       HeroLimit,
		"initialPageSize": InitialArticlesLimit,
		"categoryLimit":   CategoryListLimit,
	}
	if err := c.exec(ctx, OpHomepage, homepageQuery, vars, &resp); err != nil {
		return nil, err
	}

	data := &HomepageData{
		Initial:    resp.InitialArticles,
		Categories: resp.AllCategories,
	}
	if resp.Homepage != nil {
		data.Hero = resp.Homepage.HeroArticles
	}
	return data, nil
}

// CategoryPageData is one page of a category listing.
type CategoryPageData struct {
	Category         models.Category
	Articles         []models.Article
	Page             int
	PageSize         int
	HasNextPageGuess bool
	Categories       []models.Category
}

// CategoryPage fetches a category, one page of its articles and the category
// list. It returns nil, nil when no category has the slug.
func (c *Client) CategoryPage(ctx context.Context, slug string, page, pageSize int) (*CategoryPageData, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}

	var resp struct {
		Categories    []models.Category `json:"categories"`
		Articles      []models.Article  `json:"articles"`
		AllCategories []models.Category `json:"allCategories"`
	}
	vars := map[string]any{
		"slug":          slug,
		"page":          page,
		"pageSize":      pageSize,
		"categoryLimit": CategoryListLimit,
	}
	if err := c.exec(ctx, OpCategoryPage, categoryPageQuery, vars, &resp); err != nil {
		return nil, err
	}
	if len(resp.Categories) == 0 {
		return nil, nil
	}

	return &CategoryPageData{
		Category:         resp.Categories[0],
		Articles:         resp.Articles,
		Page:             page,
		PageSize:         pageSize,
		HasNextPageGuess: pagination.HasNextPageGuess(len(resp.Articles), pageSize),
		Categories:       resp.AllCategories,
	}, nil
}

// ArticlePageData is an article with its related stories.
type ArticlePageData struct {
	Article    models.Article
	Categories []models.Category
	Related    []models.Article
}

// Article fetches an article by slug. Related articles come from its first
// category and exclude the article itself; an article without categories has
// none. It returns nil, nil when no article has the slug.
func (c *Client) Article(ctx context.Context, slug string) (*ArticlePageData, error) {
	var primary struct {
		Articles []struct {
			Categories []struct {
				Slug string `json:"slug"`
			} `json:"categories"`
		} `json:"articles"`
	}
	if err := c.exec(ctx, OpPrimaryCategory, primaryCategoryQuery, map[string]any{"slug": slug}, &primary); err != nil {
		return nil, err
	}
	if len(primary.Articles) == 0 {
		return nil, nil
	}

	var primarySlug string
	if cats := primary.Articles[0].Categories; len(cats) > 0 {
		primarySlug = cats[0].Slug
	}

	var resp struct {
		Articles        []models.Article  `json:"articles"`
		AllCategories   []models.Category `json:"allCategories"`
		RelatedArticles []models.Article  `json:"relatedArticles"`
	}
	if primarySlug == "" {
		slog.Warn("article has no category, skipping related articles", "slug", slug)
		vars := map[string]any{"slug": slug, "categoryLimit": CategoryListLimit}
		if err := c.exec(ctx, OpArticleOnly, articleOnlyQuery, vars, &resp); err != nil {
			return nil, err
		}
	} else {
		vars := map[string]any{
			"slug":                slug,
			"primaryCategorySlug": primarySlug,
			"relatedLimit":        RelatedLimit,
			"categoryLimit":       CategoryListLimit,
		}
		if err := c.exec(ctx, OpArticle, articleWithRelatedQuery, vars, &resp); err != nil {
			return nil, err
		}
	}
	if len(resp.Articles) == 0 {
		return nil, nil
	}

	article := resp.Articles[0]
	return &ArticlePageData{
		Article:    article,
		Categories: resp.AllCategories,
		Related:    relatedExcluding(resp.RelatedArticles, article.Slug, RelatedLimit),
	}, nil
}

func relatedExcluding(articles []models.Article, slug string, limit int) []models.Article {
	out := make([]models.Article, 0, min(len(articles), limit))
	for _, a := range articles {
		if a.Slug == slug {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, a)
	}
	return out
}

// StaticPage fetches a static page by slug, or nil, nil when there is none.
func (c *Client) StaticPage(ctx context.Context, slug string) (*models.StaticPage, error) {
	var resp struct {
		StaticPages []models.StaticPage `json:"staticPages"`
	}
	if err := c.exec(ctx, OpStaticPage, staticPageQuery, map[string]any{"slug": slug}, &resp); err != nil {
		return nil, err
	}
	if len(resp.StaticPages) == 0 {
		return nil, nil
	}
	page := resp.StaticPages[0]
	return &page, nil
}

// SlugEntry is one sitemap candidate.
type SlugEntry struct {
	Slug      string `json:"slug"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Slugs lists every addressable record.
type Slugs struct {
	Articles    []SlugEntry `json:"articles"`
	Categories  []SlugEntry `json:"categories"`
	StaticPages []SlugEntry `json:"staticPages"`
}

// AllSlugs fetches the slugs of every article, category and static page.
func (c *Client) AllSlugs(ctx context.Context) (*Slugs, error) {
	var resp Slugs
	vars := map[string]any{
		"articleLimit":  SitemapArticleLimit,
		"categoryLimit": SitemapCategoryLimit,
		"pageLimit":     SitemapPageLimit,
	}
	if err := c.exec(ctx, OpAllSlugs, allSlugsQuery, vars, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ArticlesForCategory fetches the newest articles of a category, or the
// newest overall when slug is nil or empty.
func (c *Client) ArticlesForCategory(ctx context.Context, slug *string) ([]models.Article, error) {
	var resp struct {
		Articles []models.Article `json:"articles"`
	}

	var err error
	if slug == nil || *slug == models.HomeSlug {
		err = c.exec(ctx, OpLatestArticles, latestArticlesQuery, map[string]any{"pageSize": FeedPageSize}, &resp)
	} else {
		vars := map[string]any{"slug": *slug, "pageSize": FeedPageSize}
		err = c.exec(ctx, OpArticlesCategory, articlesByCategoryQuery, vars, &resp)
	}
	if err != nil {
		return nil, err
	}
	if resp.Articles == nil {
		return []models.Article{}, nil
	}
	return resp.Articles, nil
}
