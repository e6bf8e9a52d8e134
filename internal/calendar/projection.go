// Package calendar derives displayable month-calendar events from application
// deadlines. The projection is pure and total: one bad record is dropped, it
// never takes the rest of the list down with it.
package calendar

import (
	"strings"
	"time"

	"go-jobcal-web/internal/domain"
)

// Layouts tried for deadline strings that are neither a bare date nor RFC 3339.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
}

// Project maps applications to calendar events, one per valid deadline, in
// input order. Applications without a deadline or with an unparseable one are
// skipped silently.
func Project(apps []domain.Application) []domain.CalendarEvent {
	events := make([]domain.CalendarEvent, 0, len(apps))
	for _, app := range apps {
		day, ok := parseDeadline(app.JobPosting.Deadline)
		if !ok {
			continue
		}
		events = append(events, domain.CalendarEvent{
			Title: app.JobPosting.CompanyName,
			// Start and End share the same value: a single-day all-day
			// event, never a span.
			Start:       day,
			End:         day,
			AllDay:      true,
			Application: app,
		})
	}
	return events
}

// parseDeadline normalizes a deadline string to the start of its calendar day
// in local time. A bare YYYY-MM-DD date is anchored to midday first so a
// later timezone conversion cannot roll it into the neighboring day.
func parseDeadline(deadline *string) (time.Time, bool) {
	if deadline == nil {
		return time.Time{}, false
	}
	s := strings.TrimSpace(*deadline)
	if s == "" {
		return time.Time{}, false
	}

	var t time.Time
	switch {
	case len(s) == 10:
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		t = parsed.Add(12 * time.Hour)
	case strings.Contains(s, "T"):
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			// Datetime without offset, e.g. 2026-02-20T12:00:00
			parsed, err = time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
			if err != nil {
				return time.Time{}, false
			}
		}
		t = parsed
	default:
		var err error
		for _, layout := range fallbackLayouts {
			t, err = time.ParseInLocation(layout, s, time.Local)
			if err == nil {
				break
			}
		}
		if err != nil {
			return time.Time{}, false
		}
	}

	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), true
}
