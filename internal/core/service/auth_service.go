package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
	"github.com/jobtrackr/jobtracker-api/internal/core/ports"
	"github.com/jobtrackr/jobtracker-api/internal/pkg/token"
)

// AuthService implements registration, login, and account maintenance.
// Plaintext passwords only ever exist as transient arguments here: they are
// digested with bcrypt immediately and never stored or logged.
type AuthService struct {
	repo    ports.AuthRepository
	jobRepo ports.JobRepository
	tokens  *token.Manager
	logger  zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, jobRepo ports.JobRepository, tokens *token.Manager, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, jobRepo: jobRepo, tokens: tokens, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and mints a session token. An unknown email and
// a wrong password both come back as ErrInvalidCredentials so callers cannot
// probe which addresses are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	return signed, user, nil
}

// UpdateAccount changes the email and/or password. A new password is
// re-digested; the previous hash is overwritten and unrecoverable.
func (s *AuthService) UpdateAccount(ctx context.Context, id string, input ports.AccountUpdateInput) (*domain.User, error) {
	update := ports.UserUpdate{}
	if input.Email != "" {
		update.Email = &input.Email
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("account updated")
	return updated, nil
}

// DeleteAccount removes the user and cascades to every job it owns. Session
// tokens already issued for the account are stateless and stay valid until
// their natural expiry.
func (s *AuthService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	removed, err := s.jobRepo.DeleteByOwner(ctx, id)
	if err != nil {
		// The account is already gone; orphaned jobs are unreachable through
		// the API but should not fail the request.
		s.logger.Warn().Err(err).Str("user_id", id).Msg("job cascade failed after account deletion")
		return nil
	}

	s.logger.Info().Str("user_id", id).Int64("jobs_removed", removed).Msg("account deleted")
	return nil
}
