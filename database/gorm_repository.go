package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Vikesh2608/EagleReach/models"
	"github.com/Vikesh2608/EagleReach/pkg/monitoring"
)

// ErrReportNotFound is returned when no report exists for the requested ID
var ErrReportNotFound = errors.New("report not found")

// GormRepository implements ReportRepository using GORM (works with SQLite or PostgreSQL)
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository (works with SQLite or PostgreSQL)
func NewGormRepository(db *gorm.DB) *GormRepository {
	// Auto-migrate the reports table
	if err := db.AutoMigrate(&models.Report{}); err != nil {
		// Log migration error but don't fail repository creation
		// The actual database operation will fail later if schema is wrong
		slog.Warn("Failed to auto-migrate reports table", "error", err)
	}
	return &GormRepository{db: db}
}

// CreateReport persists a new citizen report
func (r *GormRepository) CreateReport(ctx context.Context, report *models.Report) (*models.Report, error) {
	start := time.Now()
	result := r.db.WithContext(ctx).Create(report)
	monitoring.RecordDBLatency(ctx, "create_report", time.Since(start))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create report: %w", result.Error)
	}
	return report, nil
}

// GetReport retrieves a report by its ID
func (r *GormRepository) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	start := time.Now()
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&report)
	monitoring.RecordDBLatency(ctx, "get_report", time.Since(start))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to retrieve report: %w", result.Error)
	}
	return &report, nil
}

// ListReports retrieves reports with optional filtering
func (r *GormRepository) ListReports(ctx context.Context, filters *ReportFilters) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Report{})

	// Apply filters
	if filters.Status != nil && *filters.Status != "" {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Category != nil && *filters.Category != "" {
		query = query.Where("category = ?", *filters.Category)
	}

	start := time.Now()
	defer func() {
		monitoring.RecordDBLatency(ctx, "list_reports", time.Since(start))
	}()

	// Get total count
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	// Apply pagination and ordering
	limit := filters.Limit
	if limit <= 0 {
		limit = 100 // default
	}
	if limit > 1000 {
		limit = 1000 // max
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(filters.Offset).Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve reports: %w", err)
	}

	if reports == nil {
		reports = []models.Report{}
	}

	return reports, total, nil
}

// UpdateReportStatus updates the status of an existing report
func (r *GormRepository) UpdateReportStatus(ctx context.Context, report *models.Report) error {
	start := time.Now()
	result := r.db.WithContext(ctx).Model(report).
		Updates(map[string]interface{}{
			"status":     report.Status,
			"updated_at": time.Now().UTC(),
		})
	monitoring.RecordDBLatency(ctx, "update_report_status", time.Since(start))
	if result.Error != nil {
		return fmt.Errorf("failed to update report status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}
