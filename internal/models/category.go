// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// HomeSlug is the slug of the synthetic "Home" category that stands for
// "all articles". It never exists in the CMS.
const HomeSlug = ""

// Category is a CMS article category.
type Category struct {
	DocumentID  string  `json:"documentId"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

// HomeCategory returns the pseudo-category shown as the first tab.
func HomeCategory() Category {
	return Category{DocumentID: "home", Name: "Home", Slug: HomeSlug}
}

// IsHome reports whether c is the synthetic Home category.
func (c Category) IsHome() bool {
	return c.Slug == HomeSlug
}

// DescriptionOr returns the description, or fallback when it is unset or blank.
func (c Category) DescriptionOr(fallback string) string {
	if c.Description == nil || *c.Description == "" {
		return fallback
	}
	return *c.Description
}

// WithHome returns a new slice with the Home category prepended.
// The input slice is never modified.
func WithHome(categories []Category) []Category {
	out := make([]Category, 0, len(categories)+1)
	out = append(out, HomeCategory())
	return append(out, categories...)
}
