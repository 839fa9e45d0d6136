// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pagination holds the page-number arithmetic shared by the category
// listing and its GraphQL query.
package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is the number of articles per category page.
const DefaultPageSize = 12

// ParsePage reads a 1-based page number from a query value. Anything that is
// not a positive integer falls back to page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset returns the zero-based start index for a page.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// HasNextPageGuess reports whether another page probably exists. The CMS does
// not return totals on these queries, so a full page is taken as a sign that
// more follow.
func HasNextPageGuess(returned, pageSize int) bool {
	return pageSize > 0 && returned == pageSize
}

// PageHref builds the link for a page of a listing. Page 1 links to the bare
// path so it shares a URL with the unpaginated listing.
func PageHref(basePath string, page int) string {
	if page <= 1 {
		return basePath
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return basePath + "?" + q.Encode()
}

// Links are the Previous/Next controls for a listing page. Empty strings mean
// the control is hidden.
type Links struct {
	Page int
	Prev string
	Next string
}

// NewLinks computes the controls for page of basePath.
func NewLinks(basePath string, page int, hasNext bool) Links {
	l := Links{Page: page}
	if page > 1 {
		l.Prev = PageHref(basePath, page-1)
	}
	if hasNext {
		l.Next = PageHref(basePath, page+1)
	}
	return l
}
