package ports

import (
	"context"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
)

// JobFields carries the mutable fields of a job for updates. Nil fields are
// left untouched. UserID is deliberately absent: ownership is immutable and
// only ever set from the authenticated identity at creation time.
type JobFields struct {
	CompanyName *string
	Role        *string
	Status      *domain.JobStatus
	AppliedFrom *string
	AppliedDate *string
	Description *string
}

// JobRepository defines persistence operations for job applications.
// Every read and mutation that names a job id is conjoined with an equality
// filter on userID, so a job owned by another account behaves exactly like a
// job that does not exist.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	// List returns all jobs owned by userID, most recently created first.
	List(ctx context.Context, userID string) ([]*domain.Job, error)
	FindByID(ctx context.Context, userID, jobID string) (*domain.Job, error)
	// Update applies fields under the (jobID, userID) filter and returns the
	// number of documents matched. Zero is not an error.
	Update(ctx context.Context, userID, jobID string, fields JobFields) (int64, error)
	// Delete removes the job under the (jobID, userID) filter and returns the
	// number of documents removed. Zero is not an error.
	Delete(ctx context.Context, userID, jobID string) (int64, error)
	// DeleteByOwner removes every job owned by userID (account deletion cascade).
	DeleteByOwner(ctx context.Context, userID string) (int64, error)
}
