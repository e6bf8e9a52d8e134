package domain

import (
	"context"
	"errors"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// JobPosting is the underlying listing data. Server-assigned and immutable
// from the client's perspective; the only way it changes here is via re-fetch.
type JobPosting struct {
	ID          int64                  `json:"id"`
	CompanyName string                 `json:"company_name"`
	JobTitle    string                 `json:"job_title"`
	Deadline    *string                `json:"deadline"`
	OriginalURL string                 `json:"original_url"`
	ParsedData  map[string]interface{} `json:"parsed_data,omitempty"`
	Description *string                `json:"description,omitempty"`
	Location    *string                `json:"location,omitempty"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   *string                `json:"updated_at,omitempty"`
}

// JobPostingCreate is the editable draft in the add flow: pre-filled by the
// parser on success, empty for manual entry, persisted via POST /jobs.
type JobPostingCreate struct {
	CompanyName string                 `json:"company_name" validate:"required"`
	JobTitle    string                 `json:"job_title" validate:"required"`
	Deadline    *string                `json:"deadline"`
	OriginalURL string                 `json:"original_url" validate:"required,url"`
	ParsedData  map[string]interface{} `json:"parsed_data,omitempty"`
	Description *string                `json:"description,omitempty"`
	Location    *string                `json:"location,omitempty"`
}

// ParseResult is the outcome of server-side extraction of job fields from a
// posting URL. Success is not guaranteed; callers fall back to manual entry.
type ParseResult struct {
	Success bool              `json:"success"`
	Data    *JobPostingCreate `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Backend is the REST contract this client consumes. Implemented by
// internal/backend; mocked in state-machine tests.
type Backend interface {
	ParseJobPosting(ctx context.Context, url string) (*ParseResult, error)
	CreateJobPosting(ctx context.Context, draft *JobPostingCreate) (*JobPosting, error)
	GetJobPosting(ctx context.Context, id int64) (*JobPosting, error)
	ListApplications(ctx context.Context) ([]Application, error)
	GetApplication(ctx context.Context, id int64) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, update ApplicationUpdate) (*Application, error)
	DeleteApplication(ctx context.Context, id int64) error
	// FetchAccessToken exchanges the backend session cookie for a bearer
	// token; an Unauthorized AppError means no valid session exists.
	FetchAccessToken(ctx context.Context) error
	Logout(ctx context.Context) error
	// LoginURL constructs (does not perform) the identity-provider redirect.
	LoginURL() string
}
