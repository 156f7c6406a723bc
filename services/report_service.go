package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vikesh2608/EagleReach/database"
	"github.com/Vikesh2608/EagleReach/models"
	"github.com/Vikesh2608/EagleReach/pkg/monitoring"
)

// ReportService handles citizen report operations
type ReportService struct {
	repo database.ReportRepository
}

// NewReportService creates a new report service instance
func NewReportService(repo database.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// CreateReport files a new citizen report
func (s *ReportService) CreateReport(ctx context.Context, req *models.CreateReportRequest) (*models.Report, error) {
	report := &models.Report{
		Address:      strings.TrimSpace(req.Address),
		Category:     strings.ToUpper(strings.TrimSpace(req.Category)),
		Subject:      strings.TrimSpace(req.Subject),
		Description:  req.Description,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		Status:       models.StatusOpen,
	}

	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	created, err := s.repo.CreateReport(ctx, report)
	monitoring.RecordReportEvent(ctx, "create", err == nil)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetReport retrieves a single report by ID
func (s *ReportService) GetReport(ctx context.Context, id string) (*models.Report, error) {
	return s.repo.GetReport(ctx, id)
}

// ListReports retrieves reports with optional status/category filtering
func (s *ReportService) ListReports(ctx context.Context, filters *database.ReportFilters) ([]models.Report, int64, error) {
	if filters.Status != nil && *filters.Status != "" && !models.IsValidStatus(*filters.Status) {
		return nil, 0, fmt.Errorf("%w: invalid status filter: %s", ErrInvalidInput, *filters.Status)
	}
	return s.repo.ListReports(ctx, filters)
}

// UpdateStatus transitions a report to a new status
func (s *ReportService) UpdateStatus(ctx context.Context, id, status string) (*models.Report, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status: %s", ErrInvalidInput, status)
	}

	report, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	if !report.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot transition report from %s to %s", ErrValidation, report.Status, status)
	}

	report.Status = status
	err = s.repo.UpdateReportStatus(ctx, report)
	monitoring.RecordReportEvent(ctx, "update_status", err == nil)
	if err != nil {
		return nil, err
	}
	return report, nil
}
