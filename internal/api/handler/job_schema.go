package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// The public JSON contract uses camelCase field names matching the original
// job tracker clients.

type createJobRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
	Role        string `json:"role"        validate:"required"`
	Status      string `json:"status"      validate:"omitempty,oneof=Applied Interviewing Offer Rejected Closed"`
	AppliedFrom string `json:"appliedFrom"`
	AppliedDate string `json:"appliedDate"`
	Description string `json:"description"`
}

type updateJobRequest struct {
	CompanyName *string `json:"companyName,omitempty"`
	Role        *string `json:"role,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=Applied Interviewing Offer Rejected Closed"`
	AppliedFrom *string `json:"appliedFrom,omitempty"`
	AppliedDate *string `json:"appliedDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

type jobResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CompanyName string    `json:"companyName"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	AppliedFrom string    `json:"appliedFrom,omitempty"`
	AppliedDate string    `json:"appliedDate,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type updateJobResponse struct {
	Updated int64 `json:"updated"`
}
