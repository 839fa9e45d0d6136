// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package grid

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
)

const day = 24 * time.Hour

// distance mirrors the phrasing of the usual "time ago" helpers used by the
// site designs: "less than a minute", "about 2 hours", "3 days", ...
var distance = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "less than a minute %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: time.Second},
	{D: 45 * time.Minute, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "about 1 hour %s", DivBy: time.Second},
	{D: day, Format: "about %d hours %s", DivBy: time.Hour},
	{D: 2 * day, Format: "1 day %s", DivBy: time.Second},
	{D: 30 * day, Format: "%d days %s", DivBy: day},
	{D: 60 * day, Format: "about 1 month %s", DivBy: time.Second},
	{D: 365 * day, Format: "%d months %s", DivBy: 30 * day},
	{D: 2 * 365 * day, Format: "about 1 year %s", DivBy: time.Second},
	{D: math.MaxInt64, Format: "over %d years %s", DivBy: 365 * day},
}

// ParseTimestamp parses a CMS timestamp leniently. It never panics, even
// on input the parser chokes on.
func ParseTimestamp(raw string) (t time.Time, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parse timestamp %q: %v", raw, rec)
		}
	}()
	return dateparse.ParseAny(strings.TrimSpace(raw))
}

// TimeAgo formats the distance from published to now for card headers,
// e.g. "2 hours ago" or "1m ago". Unparsable timestamps yield "".
func TimeAgo(published string, now time.Time) string {
	if strings.TrimSpace(published) == "" {
		return ""
	}
	t, err := ParseTimestamp(published)
	if err != nil {
		return ""
	}

	s := humanize.CustomRelTime(t, now, "ago", "from now", distance)
	s = strings.TrimPrefix(s, "about ")
	return strings.Replace(s, "less than a minute ago", "1m ago", 1)
}

// LongDate formats a timestamp as "January 2, 2006". Unparsable input is
// returned unchanged.
func LongDate(published string) string {
	t, err := ParseTimestamp(published)
	if err != nil {
		return published
	}
	return t.Format("January 2, 2006")
}
