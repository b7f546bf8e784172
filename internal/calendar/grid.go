// Package calendar computes the month grid for the calendar page.
// The grid is seven columns wide: leading blank cells pad out the weekday
// offset of the 1st, then one cell per day of the month. Day matching
// compares date components only and ignores the time of day.
package calendar

import (
	"strings"
	"time"

	"gearguard/internal/domain"
)

// Day is one grid cell. Blank cells (the leading pad) have a zero DayOfMonth.
type Day struct {
	DayOfMonth int
	Date       time.Time
}

// Blank reports whether this cell pads the first week's offset.
func (d Day) Blank() bool { return d.DayOfMonth == 0 }

// Month is a year/month pair with pure local navigation.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Prev returns the previous calendar month.
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return MonthOf(t)
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return MonthOf(t)
}

// Title returns the "January 2025" heading for the month.
func (m Month) Title() string {
	return m.Month.String() + " " + time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

// Days returns the grid cells for the month: one blank cell per weekday
// preceding the 1st (Sunday-first week), then every day of the month.
func (m Month) Days() []Day {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	days := make([]Day, 0, int(first.Weekday())+last.Day())
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, Day{})
	}
	for d := 1; d <= last.Day(); d++ {
		days = append(days, Day{DayOfMonth: d, Date: first.AddDate(0, 0, d-1)})
	}
	return days
}

// DateKey is the YYYY-MM-DD component of a scheduled_date string.
// Scheduled dates arrive as "2025-01-27T10:00:00"-style strings; the date
// part is compared textually, never through timezone conversion.
func DateKey(scheduled string) string {
	if i := strings.IndexByte(scheduled, 'T'); i >= 0 {
		return scheduled[:i]
	}
	if len(scheduled) > 10 {
		return scheduled[:10]
	}
	return scheduled
}

// RequestsOn returns the requests scheduled on the given day, matching on
// date components only so "2025-01-27T10:00:00" lands on 2025-01-27.
func RequestsOn(requests []domain.MaintenanceRequest, date time.Time) []domain.MaintenanceRequest {
	key := date.Format("2006-01-02")
	var out []domain.MaintenanceRequest
	for _, r := range requests {
		if r.ScheduledDate != "" && DateKey(r.ScheduledDate) == key {
			out = append(out, r)
		}
	}
	return out
}

// CountByDay buckets request counts per date key for the has-events markers.
func CountByDay(requests []domain.MaintenanceRequest) map[string]int {
	counts := make(map[string]int)
	for _, r := range requests {
		if r.ScheduledDate == "" {
			continue
		}
		counts[DateKey(r.ScheduledDate)]++
	}
	return counts
}
