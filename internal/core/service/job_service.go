package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
	"github.com/jobtrackr/jobtracker-api/internal/core/ports"
)

// ListCache abstracts the per-user list cache (Redis). Both methods are
// best-effort: a cache failure must never fail the request.
type ListCache interface {
	Get(ctx context.Context, userID string) ([]*domain.Job, bool, error)
	Set(ctx context.Context, userID string, jobs []*domain.Job) error
	Invalidate(ctx context.Context, userID string) error
}

// JobService implements the ownership-scoped job application use cases.
// The userID on every method is the authenticated identity injected by the
// auth middleware; no client-supplied owner field is ever trusted.
type JobService struct {
	repo   ports.JobRepository
	cache  ListCache
	logger zerolog.Logger
}

// NewJobService returns a JobService. cache may be nil, in which case list
// results are always read from the repository.
func NewJobService(repo ports.JobRepository, cache ListCache, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, cache: cache, logger: logger}
}

func (s *JobService) Create(ctx context.Context, userID string, input ports.CreateJobInput) (*domain.Job, error) {
	status := domain.JobStatus(input.Status)
	if status == "" {
		status = domain.StatusApplied
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	job := &domain.Job{
		UserID:      userID,
		CompanyName: input.CompanyName,
		Role:        input.Role,
		Status:      status,
		AppliedFrom: input.AppliedFrom,
		AppliedDate: input.AppliedDate,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create job")
		return nil, err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Str("job_id", created.ID).Str("user_id", userID).Msg("job created")
	return created, nil
}

func (s *JobService) List(ctx context.Context, userID string) ([]*domain.Job, error) {
	if s.cache != nil {
		if jobs, ok, err := s.cache.Get(ctx, userID); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("job list cache read failed")
		} else if ok {
			return jobs, nil
		}
	}

	jobs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, jobs); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("job list cache write failed")
		}
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, userID, jobID string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, userID, jobID)
}

func (s *JobService) Update(ctx context.Context, userID, jobID string, input ports.UpdateJobInput) (int64, error) {
	fields := ports.JobFields{
		CompanyName: input.CompanyName,
		Role:        input.Role,
		AppliedFrom: input.AppliedFrom,
		AppliedDate: input.AppliedDate,
		Description: input.Description,
	}
	if input.Status != nil {
		status := domain.JobStatus(*input.Status)
		if !status.IsValid() {
			return 0, domain.ErrInvalidStatus
		}
		fields.Status = &status
	}

	matched, err := s.repo.Update(ctx, userID, jobID, fields)
	if err != nil {
		return 0, err
	}

	if matched > 0 {
		s.invalidate(ctx, userID)
	}
	return matched, nil
}

func (s *JobService) Delete(ctx context.Context, userID, jobID string) (int64, error) {
	removed, err := s.repo.Delete(ctx, userID, jobID)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.invalidate(ctx, userID)
		s.logger.Info().Str("job_id", jobID).Str("user_id", userID).Msg("job deleted")
	}
	return removed, nil
}

func (s *JobService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("job list cache invalidation failed")
	}
}
