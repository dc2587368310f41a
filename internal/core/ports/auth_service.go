package ports

import (
	"context"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
)

// AccountUpdateInput carries the optional fields for an account update.
// An empty string means "leave unchanged".
type AccountUpdateInput struct {
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	// Login verifies credentials and returns a signed session token alongside
	// the user. Unknown email and wrong password are indistinguishable: both
	// fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	UpdateAccount(ctx context.Context, id string, input AccountUpdateInput) (*domain.User, error)
	// DeleteAccount removes the user and all jobs it owns. Tokens already
	// issued for the account stay valid until they expire.
	DeleteAccount(ctx context.Context, id string) error
}
