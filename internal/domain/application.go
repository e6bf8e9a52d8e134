package domain

// Status of a tracked application. The backend owns the canonical value; the
// client only chooses among the five variants below.
type Status string

const (
	StatusNotApplied Status = "NOT_APPLIED"
	StatusApplied    Status = "APPLIED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusRejected   Status = "REJECTED"
	StatusAccepted   Status = "ACCEPTED"
)

// AllStatuses in display order (detail panel buttons).
var AllStatuses = []Status{
	StatusNotApplied,
	StatusApplied,
	StatusInProgress,
	StatusRejected,
	StatusAccepted,
}

// Application represents a user's tracked attempt at one job posting. The
// client never constructs one; it is always the shape returned by the backend
// (JobPosting is denormalized into every row, JobPosting.ID == JobPostingID).
type Application struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	JobPostingID int64      `json:"job_posting_id"`
	Status       Status     `json:"status"`
	Memo         *string    `json:"memo,omitempty"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    *string    `json:"updated_at,omitempty"`
	JobPosting   JobPosting `json:"job_posting"`
}

// ApplicationUpdate is the partial body for PATCH /applications/{id}/status.
type ApplicationUpdate struct {
	Status Status  `json:"status,omitempty"`
	Memo   *string `json:"memo,omitempty"`
}
