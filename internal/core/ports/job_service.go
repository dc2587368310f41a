package ports

import (
	"context"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
)

// CreateJobInput carries all data needed to create a job application.
// The owner is not part of the input: it always comes from the
// authenticated identity.
type CreateJobInput struct {
	CompanyName string
	Role        string
	Status      string
	AppliedFrom string
	AppliedDate string
	Description string
}

// UpdateJobInput mirrors CreateJobInput with every field optional.
type UpdateJobInput struct {
	CompanyName *string
	Role        *string
	Status      *string
	AppliedFrom *string
	AppliedDate *string
	Description *string
}

// JobService defines the ownership-scoped use cases over job applications.
// userID is the authenticated account id injected by the auth middleware.
type JobService interface {
	Create(ctx context.Context, userID string, input CreateJobInput) (*domain.Job, error)
	List(ctx context.Context, userID string) ([]*domain.Job, error)
	// Get fails with domain.ErrJobNotFound both when the job does not exist
	// and when it belongs to a different account.
	Get(ctx context.Context, userID, jobID string) (*domain.Job, error)
	// Update returns the number of jobs matched by the ownership-conjoined
	// filter; zero means "not yours or not there" and is not an error.
	Update(ctx context.Context, userID, jobID string, input UpdateJobInput) (int64, error)
	Delete(ctx context.Context, userID, jobID string) (int64, error)
}
