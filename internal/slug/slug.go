// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug validates the record slugs that appear in public URLs.
package slug

import "regexp"

// MaxLength bounds accepted slugs; longer ones cannot name a CMS record.
const MaxLength = 200

// valid matches the CMS uid alphabet.
var valid = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)

// Valid reports whether s can be a CMS slug. Routes reject anything else
// with a 404 before querying the CMS.
func Valid(s string) bool {
	return len(s) <= MaxLength && valid.MatchString(s)
}
