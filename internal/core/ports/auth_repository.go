package ports

import (
	"context"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
)

// UserUpdate carries the mutable account fields. Nil fields are left
// untouched; PasswordHash must already be digested by the caller.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
}

// AuthRepository defines the persistence interface for user accounts.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
