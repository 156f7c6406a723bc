package models

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vikesh2608/EagleReach/config"
)

// Report status constants (not configurable, core to the system)
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusDismissed  = "DISMISSED"
)

// Category enum configuration (loaded from YAML config file)
var (
	enumConfig     *config.ReportEnums
	enumConfigOnce sync.Once
)

// SetEnumConfig sets the report enum configuration (called at service startup)
func SetEnumConfig(enums *config.ReportEnums) {
	enumConfigOnce.Do(func() {
		enumConfig = enums
	})
}

// GetEnumConfig returns the current report enum configuration
func GetEnumConfig() *config.ReportEnums {
	return enumConfig
}

// Report represents a citizen-filed civic issue report
type Report struct {
	// Primary Key
	ID uuid.UUID `gorm:"primaryKey" json:"id"`

	// Where the issue is; free-form street address or ZIP
	Address string `gorm:"type:varchar(512);not null" json:"address"`

	// Classification
	Category string `gorm:"type:varchar(50);not null;index:idx_reports_category" json:"category"`
	Status   string `gorm:"type:varchar(20);not null;index:idx_reports_status" json:"status"`

	// Content
	Subject     string `gorm:"type:varchar(255);not null" json:"subject"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Optional contact for follow-up
	ContactEmail string `gorm:"type:varchar(255)" json:"contactEmail,omitempty"`

	BaseModel
}

// TableName sets the table name for the Report model
func (Report) TableName() string {
	return "reports"
}

// BeforeCreate hook to set default values
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusOpen
	}
	return r.BaseModel.BeforeCreate(tx)
}

// Validate performs validation checks matching the database constraints.
// Category validation uses the configured enum set when loaded, falling back
// to the compiled-in defaults.
func (r *Report) Validate() error {
	if strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("address is required")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return fmt.Errorf("subject is required")
	}

	if !IsValidStatus(r.Status) {
		return fmt.Errorf("invalid status: %s", r.Status)
	}

	if enumConfig != nil {
		if !enumConfig.IsValidCategory(r.Category) {
			return fmt.Errorf("invalid category: %s", r.Category)
		}
	} else {
		if !contains(config.DefaultReportEnums.Categories, r.Category) {
			return fmt.Errorf("invalid category: %s (must be one of: %v)", r.Category, config.DefaultReportEnums.Categories)
		}
	}

	return nil
}

// IsValidStatus checks if the given report status is valid
func IsValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusInProgress, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change is allowed. A dismissed
// report can only be reopened; everything else may move freely between the
// active states.
func (r *Report) CanTransitionTo(status string) bool {
	if !IsValidStatus(status) {
		return false
	}
	if r.Status == StatusDismissed {
		return status == StatusOpen
	}
	return true
}

// contains checks if a string slice contains a value.
// Used only for fallback validation when config is not available.
func contains(slice []string, value string) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}
