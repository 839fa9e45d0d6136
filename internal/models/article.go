// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the CMS record shapes consumed by the front-end.
// All records are immutable snapshots of API responses; optional CMS fields
// are pointers and each has an explicit defaulting accessor.
package models

import "strings"

// Image is a CMS media record (featured image or source icon).
type Image struct {
	DocumentID      string  `json:"documentId,omitempty"`
	URL             string  `json:"url"`
	AlternativeText *string `json:"alternativeText,omitempty"`
	Width           *int    `json:"width,omitempty"`
	Height          *int    `json:"height,omitempty"`
}

// AltOr returns the alternative text, or fallback when none is set.
func (i *Image) AltOr(fallback string) string {
	if i == nil || i.AlternativeText == nil || *i.AlternativeText == "" {
		return fallback
	}
	return *i.AlternativeText
}

// Author is the optional article author.
type Author struct {
	Name string `json:"name"`
}

// Article is a CMS article. Card queries fill only a subset of the fields;
// the article page query fills Body and the SEO fields as well.
type Article struct {
	DocumentID      string     `json:"documentId"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Body            string     `json:"body,omitempty"`
	Excerpt         *string    `json:"excerpt,omitempty"`
	PublicationDate string     `json:"publication_date"`
	FeaturedImage   *Image     `json:"featured_image,omitempty"`
	Source          *Source    `json:"source,omitempty"`
	Categories      []Category `json:"categories,omitempty"`
	Author          *Author    `json:"author,omitempty"`
	IsAdvertisement *bool      `json:"is_advertisement,omitempty"`
	ExternalURL     *string    `json:"external_url,omitempty"`
	SEOTitle        *string    `json:"seo_title,omitempty"`
	SEODescription  *string    `json:"seo_description,omitempty"`
}

// IsExternalAd reports whether the article is sponsored content that links
// out. An advertisement flag without a usable URL is a normal article.
func (a Article) IsExternalAd() bool {
	return a.IsAdvertisement != nil && *a.IsAdvertisement && a.AdURL() != ""
}

// AdURL returns the trimmed external redirect URL, or "" if unset.
func (a Article) AdURL() string {
	if a.ExternalURL == nil {
		return ""
	}
	return strings.TrimSpace(*a.ExternalURL)
}

// ExcerptOr returns the excerpt, or fallback when it is unset or blank.
func (a Article) ExcerptOr(fallback string) string {
	if a.Excerpt == nil || *a.Excerpt == "" {
		return fallback
	}
	return *a.Excerpt
}

// PrimaryCategorySlug returns the slug of the first category, or "".
func (a Article) PrimaryCategorySlug() string {
	if len(a.Categories) == 0 {
		return ""
	}
	return a.Categories[0].Slug
}

// SourceName returns the attribution label for the article.
func (a Article) SourceName(fallback string) string {
	if a.Source == nil || a.Source.Name == "" {
		return fallback
	}
	return a.Source.Name
}
