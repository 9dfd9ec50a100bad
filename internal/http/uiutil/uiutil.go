package uiutil

import (
	"strings"
	"time"
)

// Display layouts.
const (
	FriendlyDateLayout     = "Jan 2, 2006"
	FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"
)

// tripTimeLayouts are the timestamp shapes seen in travel offers, most specific first.
var tripTimeLayouts = []string{ //nolint:gochecknoglobals // read-only parse table
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// FormatFriendlyDate returns a local calendar date such as "Mar 1, 2025".
func FormatFriendlyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateLayout)
}

// FormatFriendlyDateTime returns a consistent, user-friendly local timestamp representation.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// FormatTripTime renders an offer timestamp as "Mar 1, 2025 8:00 AM". Offer
// times are local to the airport, so no zone conversion is applied. Values
// that do not parse are returned unchanged.
func FormatTripTime(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range tripTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(FriendlyDateTimeLayout)
		}
	}
	return raw
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
