package domain

import (
	"errors"
	"time"
)

// JobStatus represents the stage of a job application.
type JobStatus string

const (
	StatusApplied      JobStatus = "Applied"
	StatusInterviewing JobStatus = "Interviewing"
	StatusOffer        JobStatus = "Offer"
	StatusRejected     JobStatus = "Rejected"
	StatusClosed       JobStatus = "Closed"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrJobNotFound = errors.New("job not found")
var ErrInvalidStatus = errors.New("invalid job status")
var ErrForbidden = errors.New("access forbidden")

// IsValid reports whether s is one of the known application stages.
func (s JobStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusClosed:
		return true
	}
	return false
}

// Job is a single tracked job application. UserID is the owning account and
// is immutable after creation; every repository query on jobs is conjoined
// with an equality filter on it.
type Job struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CompanyName string    `json:"companyName"`
	Role        string    `json:"role"`
	Status      JobStatus `json:"status"`
	AppliedFrom string    `json:"appliedFrom,omitempty"`
	AppliedDate string    `json:"appliedDate,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
