// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.


// Package seo generates the crawler-facing artifacts of the site: the XML
// sitemap and robots.txt.
package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pulsereport/internal/cms"
	"pulsereport/internal/grid"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is one sitemap entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// section describes how one record type appears in the sitemap.
type section struct {
	prefix     string
	changeFreq string
	priority   string
}

var (
	pagesSection      = section{prefix: "/pages/", changeFreq: "monthly", priority: "0.5"}
	categoriesSection = section{prefix: "/category/", changeFreq: "daily", priority: "0.7"}
	articlesSection   = section{prefix: "/article/", changeFreq: "weekly", priority: "0.8"}
)

// Entries lists the sitemap URLs for siteURL. The home URL is always
// present; slugs may be nil when the CMS could not be reached.
func Entries(siteURL string, slugs *cms.Slugs, now time.Time) []URL {
	base := strings.TrimRight(siteURL, "/")
	stamp := now.UTC().Format(time.RFC3339)

	urls := []URL{{Loc: base + "/", LastMod: stamp, ChangeFreq: "daily", Priority: "1.0"}}
	if slugs == nil {
		return urls
	}

	add := func(s section, entries []cms.SlugEntry) {
		for _, e := range entries {
			if e.Slug == "" {
				continue
			}
			urls = append(urls, URL{
				Loc:        base + s.prefix + url.PathEscape(e.Slug),
				LastMod:    lastMod(e.UpdatedAt, stamp),
				ChangeFreq: s.changeFreq,
				Priority:   s.priority,
			})
		}
	}
	add(pagesSection, slugs.StaticPages)
	add(categoriesSection, slugs.Categories)
	add(articlesSection, slugs.Articles)
	return urls
}

// lastMod normalizes a CMS timestamp, falling back to the generation time.
func lastMod(updatedAt, fallback string) string {
	if updatedAt == "" {
		return fallback
	}
	t, err := grid.ParseTimestamp(updatedAt)
	if err != nil {
		return fallback
	}
	return t.UTC().Format(time.RFC3339)
}

// Sitemap renders the sitemap XML document.
func Sitemap(siteURL string, slugs *cms.Slugs, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	set := urlSet{Xmlns: sitemapNS, URLs: Entries(siteURL, slugs, now)}
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots renders robots.txt: everything allowed, with the sitemap link.
func Robots(siteURL string) []byte {
	base := strings.TrimRight(siteURL, "/")
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + base + "/sitemap.xml\n")
}
