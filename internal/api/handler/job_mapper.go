package handler

import (
	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
	"github.com/jobtrackr/jobtracker-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateJobInput(req createJobRequest) ports.CreateJobInput {
	return ports.CreateJobInput{
		CompanyName: req.CompanyName,
		Role:        req.Role,
		Status:      req.Status,
		AppliedFrom: req.AppliedFrom,
		AppliedDate: req.AppliedDate,
		Description: req.Description,
	}
}

func toUpdateJobInput(req updateJobRequest) ports.UpdateJobInput {
	return ports.UpdateJobInput{
		CompanyName: req.CompanyName,
		Role:        req.Role,
		Status:      req.Status,
		AppliedFrom: req.AppliedFrom,
		AppliedDate: req.AppliedDate,
		Description: req.Description,
	}
}

// --- Domain → HTTP response ---

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		UserID:      j.UserID,
		CompanyName: j.CompanyName,
		Role:        j.Role,
		Status:      string(j.Status),
		AppliedFrom: j.AppliedFrom,
		AppliedDate: j.AppliedDate,
		Description: j.Description,
		CreatedAt:   j.CreatedAt.UTC(),
		UpdatedAt:   j.UpdatedAt.UTC(),
	}
}

func toJobListResponse(jobs []*domain.Job) []jobResponse {
	out := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = toJobResponse(j)
	}
	return out
}
