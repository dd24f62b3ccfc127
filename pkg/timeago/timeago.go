// Copyright (c) 2026 GroupMela. All rights reserved.

// Package timeago renders timestamps as short relative labels for admin tables.
//
// # Output
//
// "Just now", "5 mins ago", "3 hours ago", "2 days ago", and the plain
// calendar date once the event is older than a week.
package timeago

import (
	"fmt"
	"time"
)

// dateLayout is the fallback format for events older than a week.
const dateLayout = "Jan 2, 2006"

// Format returns a relative label for t as seen from now.
func Format(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "min")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return t.Format(dateLayout)
	}
}

// plural renders "1 min ago" / "5 mins ago".
func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
