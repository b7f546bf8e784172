package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "long…", Truncate("longer text", 5))
	assert.Equal(t, "…", Truncate("ab", 1))
	assert.Equal(t, "unchanged", Truncate("unchanged", 0))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "abcd", PadRight("abcd", 4))
	assert.Equal(t, "abcde", PadRight("abcde", 4))
}

func TestPadRight_IgnoresAnsiSequences(t *testing.T) {
	styled := StyleRed.Render("ab")
	padded := PadRight(styled, 4)
	assert.True(t, strings.HasSuffix(padded, "  "), "padding counts visible width, not bytes")
}

func TestShortDate(t *testing.T) {
	assert.Equal(t, "2025-01-27", ShortDate("2025-01-27T10:00:00"))
	assert.Equal(t, "2025-01-27", ShortDate("2025-01-27"))
	assert.Equal(t, "-", ShortDate(""))
}

func TestScheduleStamp(t *testing.T) {
	assert.Equal(t, "2025-01-27 10:00", ScheduleStamp("2025-01-27T10:00:00"))
	assert.Equal(t, "2025-01-27 00:00", ScheduleStamp("2025-01-27"))
	assert.Equal(t, "-", ScheduleStamp(""))
	assert.Equal(t, "not a date", ScheduleStamp("not a date"))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "a", Coalesce("a", "b"))
	assert.Equal(t, "b", Coalesce("", "b"))
	assert.Equal(t, "-", Coalesce("", ""))
	assert.Equal(t, "-", Coalesce())
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{{"1", "CNC Machine 01"}, {"2", "Forklift A"}},
	)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "CNC Machine 01")
	assert.Contains(t, out, "Forklift A")

	lines := strings.Split(out, "\n")
	assert.GreaterOrEqual(t, len(lines), 4, "header, separator, and one line per row")
}
