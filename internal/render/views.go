// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.


package render

import (
	"time"

	"pulsereport/internal/cms"
	"pulsereport/internal/grid"
	"pulsereport/internal/models"
	"pulsereport/internal/pagination"
)

const (
	// DefaultSourceName attributes cards whose article has no source.
	DefaultSourceName = "Pulse Report"

	// SponsoredLabel attributes advertisement cards without a source.
	SponsoredLabel = "Sponsored"

	// heroSideCount is how many hero articles follow the lead one.
	heroSideCount = 2
)

// Card is the view of a single article in a grid, hero or list.
type Card struct {
	Title       string
	Href        string
	External    bool
	ImageURL    string
	ImageAlt    string
	SourceName  string
	SourceIcon  string
	IconAlt     string
	TimeAgo     string
	Excerpt     string
	Attribution string
}

// Slot is one grid cell: a single card, the related box or the carousel.
type Slot struct {
	Kind  string
	Span  int
	Cards []Card
}

// Feed is a composed article grid.
type Feed struct {
	Columns int
	Slots   []Slot
}

// Tab is one entry of the category tab strip.
type Tab struct {
	Name   string
	Slug   string
	Active bool
}

// Hero is the homepage lead section.
type Hero struct {
	Lead *Card
	Side []Card
}

// FeedSection is the swappable part of the homepage: tabs plus the feed
// driven by the visitor's selection.
type FeedSection struct {
	Tabs      []Tab
	Feed      Feed
	Loading   bool
	Err       string
	Empty     bool
	CSRFToken string
}

// HomeView is the data of the home template.
type HomeView struct {
	Hero    Hero
	Section FeedSection
}

// CategoryView is the data of the category template.
type CategoryView struct {
	Name        string
	Description string
	Feed        Feed
	Empty       bool
	Pages       pagination.Links
}

// CategoryLink is a category reference in article meta.
type CategoryLink struct {
	Name string
	Href string
}

// ArticleView is the data of the article template.
type ArticleView struct {
	Title         string
	ImageURL      string
	ImageAlt      string
	SourceName    string
	SourceWebsite string
	SourceIcon    string
	IconAlt       string
	Published     string
	PublishedLong string
	Categories    []CategoryLink
	Body          string
	Related       []Card
}

// StaticView is the data of the static page template.
type StaticView struct {
	Title string
	Body  string
}

// Card builds the view of an article. Advertisements link out and carry no
// relative time.
func (rn *Renderer) Card(a models.Article) Card {
	c := Card{
		Title:    a.Title,
		Href:     "/article/" + a.Slug,
		ImageAlt: a.Title,
		Excerpt:  a.ExcerptOr(""),
	}
	if a.FeaturedImage != nil {
		c.ImageURL = cms.MediaURL(rn.opts.MediaBase, a.FeaturedImage.URL)
		c.ImageAlt = a.FeaturedImage.AltOr(a.Title)
	}
	if a.Source != nil && a.Source.Icon != nil {
		c.SourceIcon = cms.MediaURL(rn.opts.MediaBase, a.Source.Icon.URL)
	}

	if a.IsExternalAd() {
		c.Href = a.AdURL()
		c.External = true
		c.Attribution = a.SourceName(SponsoredLabel)
		c.SourceName = c.Attribution
	} else {
		c.SourceName = a.SourceName(DefaultSourceName)
		c.TimeAgo = grid.TimeAgo(a.PublicationDate, rn.now())
	}
	if c.SourceIcon != "" {
		c.IconAlt = a.Source.Icon.AltOr(c.SourceName + " Logo")
	}
	return c
}

// Cards builds views for a list of articles.
func (rn *Renderer) Cards(articles []models.Article) []Card {
	out := make([]Card, 0, len(articles))
	for _, a := range articles {
		out = append(out, rn.Card(a))
	}
	return out
}

// Feed composes articles into grid slots for the given column count.
func (rn *Renderer) Feed(articles []models.Article, columns int) Feed {
	plan := grid.Compose(articles, columns)
	f := Feed{Columns: plan.Columns, Slots: make([]Slot, 0, len(plan.Slots))}
	for _, s := range plan.Slots {
		f.Slots = append(f.Slots, Slot{
			Kind:  s.Kind.String(),
			Span:  s.Span,
			Cards: rn.Cards(s.Articles),
		})
	}
	return f
}

// Tabs builds the tab strip. It is empty when there are no categories
// besides Home, so the strip is not rendered.
func (rn *Renderer) Tabs(categories []models.Category, selected string) []Tab {
	if len(categories) == 0 {
		return nil
	}
	all := models.WithHome(categories)
	tabs := make([]Tab, 0, len(all))
	for _, c := range all {
		tabs = append(tabs, Tab{Name: c.Name, Slug: c.Slug, Active: c.Slug == selected})
	}
	return tabs
}

// Hero builds the lead article and up to two side articles.
func (rn *Renderer) Hero(articles []models.Article) Hero {
	if len(articles) == 0 {
		return Hero{}
	}
	lead := rn.Card(articles[0])
	side := articles[1:]
	if len(side) > heroSideCount {
		side = side[:heroSideCount]
	}
	return Hero{Lead: &lead, Side: rn.Cards(side)}
}

// Article builds the article page view.
func (rn *Renderer) Article(a models.Article, related []models.Article) ArticleView {
	v := ArticleView{
		Title:         a.Title,
		Published:     a.PublicationDate,
		PublishedLong: grid.LongDate(a.PublicationDate),
		Body:          a.Body,
		Related:       rn.Cards(related),
	}
	if a.FeaturedImage != nil {
		v.ImageURL = cms.MediaURL(rn.opts.MediaBase, a.FeaturedImage.URL)
		v.ImageAlt = a.FeaturedImage.AltOr(a.Title)
	}
	if a.Source != nil {
		v.SourceName = a.Source.Name
		v.SourceWebsite = a.Source.WebsiteURL()
		if a.Source.Icon != nil {
			v.SourceIcon = cms.MediaURL(rn.opts.MediaBase, a.Source.Icon.URL)
			v.IconAlt = a.Source.Icon.AltOr(a.Source.Name + " Logo")
		}
	}
	for _, c := range a.Categories {
		v.Categories = append(v.Categories, CategoryLink{Name: c.Name, Href: "/category/" + c.Slug})
	}
	return v
}

func (rn *Renderer) now() time.Time {
	if rn.opts.Now != nil {
		return rn.opts.Now()
	}
	return time.Now()
}
