package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Truncate shortens s to max visible characters, ending with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 || len([]rune(s)) <= max {
		return s
	}
	r := []rune(s)
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// PadRight pads s with spaces to the given visible width.
func PadRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// ShortDate renders the date portion of an API timestamp string, or a dash
// when unset. Timestamps arrive as "2025-01-27T10:00:00"-style strings.
func ShortDate(s string) string {
	if s == "" {
		return "-"
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// ScheduleStamp renders an API timestamp as "2025-01-27 10:00", falling back
// to the raw string when it does not parse.
func ScheduleStamp(s string) string {
	if s == "" {
		return "-"
	}
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return s
}

// Coalesce returns the first non-empty string, or a dash.
func Coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "-"
}
