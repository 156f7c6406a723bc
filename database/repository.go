package database

import (
	"context"

	"github.com/Vikesh2608/EagleReach/models"
)

// ReportRepository defines the database-agnostic interface for report operations
type ReportRepository interface {
	// CreateReport persists a new citizen report
	CreateReport(ctx context.Context, report *models.Report) (*models.Report, error)

	// GetReport retrieves a report by its ID
	GetReport(ctx context.Context, id string) (*models.Report, error)

	// ListReports retrieves reports with optional filtering
	ListReports(ctx context.Context, filters *ReportFilters) ([]models.Report, int64, error)

	// UpdateReportStatus updates the status of an existing report
	UpdateReportStatus(ctx context.Context, report *models.Report) error
}

// ReportFilters represents query filters for listing reports
type ReportFilters struct {
	Status   *string
	Category *string
	Limit    int
	Offset   int
}
