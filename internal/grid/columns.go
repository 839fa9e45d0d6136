// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package grid

// Viewport breakpoints in CSS pixels, matching the sm/md/lg grid classes.
const (
	BreakpointSmall  = 640
	BreakpointMedium = 768
	BreakpointLarge  = 1024
)

// ColumnsForWidth maps a viewport width to the active grid column count.
// A non-positive width means "unknown" and yields fallback (clamped).
func ColumnsForWidth(width, fallback int) int {
	switch {
	case width <= 0:
		return ClampColumns(fallback)
	case width >= BreakpointLarge:
		return 4
	case width >= BreakpointMedium:
		return 3
	case width >= BreakpointSmall:
		return 2
	default:
		return 1
	}
}
