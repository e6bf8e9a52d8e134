package domain

import "time"

// CalendarEvent is derived client-side from an Application with a valid
// deadline and recomputed on every render; it has no identity beyond the
// source application's id. Start and End hold the same value so the calendar
// renders a single-day all-day cell instead of a multi-day span.
type CalendarEvent struct {
	Title       string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Application Application
}
