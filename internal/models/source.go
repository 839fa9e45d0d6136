// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Source is the publisher an article was aggregated from.
type Source struct {
	DocumentID string  `json:"documentId"`
	Name       string  `json:"name"`
	Icon       *Image  `json:"icon,omitempty"`
	Website    *string `json:"website,omitempty"`
}

// WebsiteURL returns the source website or "" if unset.
func (s *Source) WebsiteURL() string {
	if s == nil || s.Website == nil {
		return ""
	}
	return *s.Website
}
