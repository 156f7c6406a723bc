package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ReportEnums represents the enum configuration for citizen reports.
// Category values are configurable via YAML so deployments can tailor
// the report taxonomy without a code change.
type ReportEnums struct {
	Categories []string `yaml:"categories"`

	// Map for O(1) validation lookups (initialized from the slice)
	categoriesMap map[string]struct{}

	// initOnce ensures thread-safe lazy initialization of the map
	initOnce sync.Once
}

// CategoriesConfig holds the report enum configuration file layout
type CategoriesConfig struct {
	Enums ReportEnums `yaml:"enums"`
}

// DefaultReportEnums provides default category values if the config file is not found
var DefaultReportEnums = ReportEnums{
	Categories: []string{
		"ROADS",
		"SANITATION",
		"SAFETY",
		"UTILITIES",
		"PARKS",
		"OTHER",
	},
}

// LoadReportEnums loads report enum configuration from a YAML file.
// If the file is not found or cannot be read, returns default enums.
func LoadReportEnums(configPath string) (*ReportEnums, error) {
	if configPath == "" {
		configPath = "config/categories.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return GetDefaultReportEnums(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("Failed to parse report categories file, using defaults", "path", configPath, "error", err)
		return GetDefaultReportEnums(), nil
	}

	enums := &cfg.Enums
	if len(enums.Categories) == 0 {
		enums.Categories = DefaultReportEnums.Categories
	}
	enums.InitializeMaps()

	return enums, nil
}

// GetDefaultReportEnums creates a new ReportEnums instance with default values.
// The slice is copied to avoid sharing references with the global DefaultReportEnums.
func GetDefaultReportEnums() *ReportEnums {
	enums := &ReportEnums{
		Categories: append([]string(nil), DefaultReportEnums.Categories...),
	}
	enums.InitializeMaps()
	return enums
}

// InitializeMaps converts the category slice to a map for O(1) validation lookups
func (e *ReportEnums) InitializeMaps() {
	e.initOnce.Do(func() {
		e.categoriesMap = make(map[string]struct{}, len(e.Categories))
		for _, c := range e.Categories {
			e.categoriesMap[c] = struct{}{}
		}
	})
}

// IsValidCategory checks if the given report category is valid
func (e *ReportEnums) IsValidCategory(category string) bool {
	_, exists := e.categoriesMap[category]
	return exists
}
