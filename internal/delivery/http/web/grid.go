package web

import (
	"time"

	"go-jobcal-web/internal/domain"
)

// MonthGrid is the 6x7 cell layout the index template renders. Weeks start on
// Sunday, matching the calendar widget the original UI used.
type MonthGrid struct {
	Label string // e.g. "2026년 2월"
	Month string // cursor, YYYY-MM
	Prev  string
	Next  string
	Weeks [][]GridDay
}

type GridDay struct {
	Day     int
	Date    string // YYYY-MM-DD
	InMonth bool
	Today   bool
	Events  []domain.CalendarEvent
}

const monthCursorLayout = "2006-01"

// parseMonthCursor resolves the ?month= query value, defaulting to the
// current month when absent or malformed.
func parseMonthCursor(raw string, now time.Time) time.Time {
	if raw != "" {
		if t, err := time.ParseInLocation(monthCursorLayout, raw, time.Local); err == nil {
			return t
		}
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
}

// buildMonthGrid lays the projected events onto a six-week grid around the
// cursor month. Events outside the grid are dropped; events on the same day
// stack in input order (duplicates are kept, not merged).
func buildMonthGrid(cursor time.Time, events []domain.CalendarEvent, now time.Time) MonthGrid {
	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.Local)

	byDay := make(map[string][]domain.CalendarEvent, len(events))
	for _, ev := range events {
		key := ev.Start.Format("2006-01-02")
		byDay[key] = append(byDay[key], ev)
	}

	// Back up to the Sunday on or before the 1st.
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	today := now.Format("2006-01-02")

	weeks := make([][]GridDay, 0, 6)
	day := gridStart
	for w := 0; w < 6; w++ {
		week := make([]GridDay, 0, 7)
		for d := 0; d < 7; d++ {
			key := day.Format("2006-01-02")
			week = append(week, GridDay{
				Day:     day.Day(),
				Date:    key,
				InMonth: day.Month() == first.Month(),
				Today:   key == today,
				Events:  byDay[key],
			})
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}

	return MonthGrid{
		Label: first.Format("2006년 1월"),
		Month: first.Format(monthCursorLayout),
		Prev:  first.AddDate(0, -1, 0).Format(monthCursorLayout),
		Next:  first.AddDate(0, 1, 0).Format(monthCursorLayout),
		Weeks: weeks,
	}
}
