package domain

import "strings"

// StatusStyle is the visual record attached to each status variant.
type StatusStyle struct {
	Background string
	Text       string
	Border     string
	Accent     string
}

var statusLabels = map[Status]string{
	StatusNotApplied: "미지원",
	StatusApplied:    "지원완료",
	StatusInProgress: "진행중",
	StatusRejected:   "탈락",
	StatusAccepted:   "합격",
}

// Solid colors used for calendar event badges.
var statusColors = map[Status]string{
	StatusNotApplied: "#6b7280",
	StatusApplied:    "#3b82f6",
	StatusInProgress: "#0ea5e9",
	StatusRejected:   "#ef4444",
	StatusAccepted:   "#22c55e",
}

var statusStyles = map[Status]StatusStyle{
	StatusNotApplied: {Background: "#f3f4f6", Text: "#4b5563", Border: "#d1d5db", Accent: "#9ca3af"},
	StatusApplied:    {Background: "#eaf2ff", Text: "#1d4ed8", Border: "#c7dbff", Accent: "#3b82f6"},
	StatusInProgress: {Background: "#e8f8ff", Text: "#0369a1", Border: "#b6e3ff", Accent: "#0ea5e9"},
	StatusRejected:   {Background: "#ffe5e5", Text: "#b91c1c", Border: "#fecaca", Accent: "#ef4444"},
	StatusAccepted:   {Background: "#e8f7ee", Text: "#166534", Border: "#c7ebd3", Accent: "#22c55e"},
}

// Label returns the display label for the status.
func (s Status) Label() string {
	return statusLabels[s]
}

// Color returns the solid badge color for the status.
func (s Status) Color() string {
	return statusColors[s]
}

// Style returns the full visual style record for the status.
func (s Status) Style() StatusStyle {
	return statusStyles[s]
}

// NormalizeStatus maps any backend-provided status string to one of the five
// canonical variants. Comparison is case-insensitive; anything unrecognized
// falls back to NOT_APPLIED. The fallback is lossy: a genuine but unmapped
// backend status would be silently misrepresented, so callers log the raw
// value when it does not round-trip.
func NormalizeStatus(raw string) Status {
	switch Status(strings.ToUpper(raw)) {
	case StatusNotApplied:
		return StatusNotApplied
	case StatusApplied:
		return StatusApplied
	case StatusInProgress:
		return StatusInProgress
	case StatusRejected:
		return StatusRejected
	case StatusAccepted:
		return StatusAccepted
	default:
		return StatusNotApplied
	}
}
