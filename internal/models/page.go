// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// StaticPage is an editorial page such as "about-us" served under /pages/.
type StaticPage struct {
	DocumentID     string  `json:"documentId"`
	Title          string  `json:"title"`
	Slug           string  `json:"slug"`
	Body           string  `json:"body"`
	SEOTitle       *string `json:"seo_title,omitempty"`
	SEODescription *string `json:"seo_description,omitempty"`
}

// DisplayTitle returns the SEO title when set, else the page title.
func (p *StaticPage) DisplayTitle() string {
	if p.SEOTitle != nil && *p.SEOTitle != "" {
		return *p.SEOTitle
	}
	return p.Title
}

// Description returns the SEO description, or a generated one.
func (p *StaticPage) Description(siteName string) string {
	if p.SEODescription != nil && *p.SEODescription != "" {
		return *p.SEODescription
	}
	return "Read more about " + p.Title + " on " + siteName + "."
}
