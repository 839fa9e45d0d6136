// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package grid decides how an ordered article list is laid out in the
// responsive article grid. Composition is a pure function of the article
// list and the active column count, so it can be tested without a browser.
package grid

import "pulsereport/internal/models"

const (
	// CarouselSize is the number of leading articles the carousel consumes.
	CarouselSize = 6

	// RelatedBoxSize is the number of articles in the related-stories box.
	RelatedBoxSize = 3

	// MinColumns and MaxColumns bound the responsive column count.
	MinColumns = 1
	MaxColumns = 4
)

// SlotKind identifies what a grid slot renders.
type SlotKind int

const (
	SlotArticle SlotKind = iota
	SlotAd
	SlotRelated
	SlotCarousel
)

// String returns the template-facing name of the kind.
func (k SlotKind) String() string {
	switch k {
	case SlotAd:
		return "ad"
	case SlotRelated:
		return "related"
	case SlotCarousel:
		return "carousel"
	default:
		return "article"
	}
}

// Slot is one grid item. Articles holds one entry for article and ad slots,
// RelatedBoxSize entries for the related box and CarouselSize for the
// carousel. Index is the source position of the first article.
type Slot struct {
	Kind     SlotKind
	Index    int
	Span     int
	Articles []models.Article
}

// Plan is the ordered list of grid slots for one render.
type Plan struct {
	Columns int
	Slots   []Slot
}

// Count returns how many slots of kind k the plan contains.
func (p Plan) Count(k SlotKind) int {
	n := 0
	for _, s := range p.Slots {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// ClampColumns bounds a column count to [MinColumns, MaxColumns].
func ClampColumns(columns int) int {
	if columns < MinColumns {
		return MinColumns
	}
	if columns > MaxColumns {
		return MaxColumns
	}
	return columns
}

// Compose lays out articles for the given column count.
//
// With exactly three columns and at least CarouselSize articles, the first
// CarouselSize articles become a carousel spanning the first visual row.
// In three- and four-column layouts the first cell of the second visual row
// becomes a related-stories box holding the next RelatedBoxSize articles,
// once per render and only if enough articles remain. Every other article
// becomes an ad card when it is an external advertisement, or a regular
// article card.
func Compose(articles []models.Article, columns int) Plan {
	columns = ClampColumns(columns)
	plan := Plan{Columns: columns}
	if len(articles) == 0 {
		return plan
	}

	i := 0
	cells := 0

	if columns == 3 && len(articles) >= CarouselSize {
		plan.Slots = append(plan.Slots, Slot{
			Kind:     SlotCarousel,
			Index:    0,
			Span:     columns,
			Articles: articles[:CarouselSize:CarouselSize],
		})
		i = CarouselSize
		cells = columns
	}

	relatedDone := false
	for i < len(articles) {
		if !relatedDone && (columns == 3 || columns == 4) && cells == columns && i+RelatedBoxSize <= len(articles) {
			plan.Slots = append(plan.Slots, Slot{
				Kind:     SlotRelated,
				Index:    i,
				Span:     1,
				Articles: articles[i : i+RelatedBoxSize : i+RelatedBoxSize],
			})
			relatedDone = true
			cells++
			i += RelatedBoxSize
			continue
		}

		kind := SlotArticle
		if articles[i].IsExternalAd() {
			kind = SlotAd
		}
		plan.Slots = append(plan.Slots, Slot{
			Kind:     kind,
			Index:    i,
			Span:     1,
			Articles: articles[i : i+1 : i+1],
		})
		cells++
		i++
	}

	return plan
}
