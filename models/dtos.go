package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Vikesh2608/EagleReach/providers"
)

// AskRequest is the request body for POST /ask
type AskRequest struct {
	Address string `json:"address"`
}

// AskResponse is the response body for POST /ask
type AskResponse struct {
	Officials []providers.Official `json:"officials"`
}

// CreateReportRequest is the request body for POST /api/reports
type CreateReportRequest struct {
	Address      string `json:"address"`
	Category     string `json:"category"`
	Subject      string `json:"subject"`
	Description  string `json:"description,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

// UpdateReportStatusRequest is the request body for PATCH /api/reports/{id}
type UpdateReportStatusRequest struct {
	Status string `json:"status"`
}

// ReportResponse is a single report in API responses
type ReportResponse struct {
	ID           uuid.UUID `json:"id"`
	Address      string    `json:"address"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ListReportsResponse is the response body for GET /api/reports
type ListReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
}

// NewReportResponse converts a Report model to its API representation
func NewReportResponse(r *Report) ReportResponse {
	return ReportResponse{
		ID:           r.ID,
		Address:      r.Address,
		Category:     r.Category,
		Status:       r.Status,
		Subject:      r.Subject,
		Description:  r.Description,
		ContactEmail: r.ContactEmail,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
