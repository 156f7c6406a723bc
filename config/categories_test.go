package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReportEnums_DefaultValues(t *testing.T) {
	// Loading with a non-existent file should return defaults
	enums, err := LoadReportEnums("/nonexistent/path/categories.yaml")
	if err != nil {
		t.Fatalf("Expected no error for non-existent file, got: %v", err)
	}

	if enums == nil {
		t.Fatal("Expected default enums, got nil")
	}

	if len(enums.Categories) == 0 {
		t.Error("Expected default categories")
	}

	if !enums.IsValidCategory("ROADS") {
		t.Error("Expected ROADS to be a valid default category")
	}
	if enums.IsValidCategory("NOT_A_CATEGORY") {
		t.Error("Expected NOT_A_CATEGORY to be invalid")
	}
}

func TestLoadReportEnums_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "categories.yaml")
	configContent := `enums:
  categories:
    - POTHOLES
    - STREETLIGHTS
`

	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	enums, err := LoadReportEnums(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if len(enums.Categories) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(enums.Categories))
	}
	if !enums.IsValidCategory("POTHOLES") {
		t.Error("Expected POTHOLES to be valid")
	}
	if enums.IsValidCategory("ROADS") {
		t.Error("Expected ROADS to be invalid when overridden by config")
	}
}

func TestLoadReportEnums_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "categories.yaml")

	if err := os.WriteFile(configPath, []byte("not: [valid: yaml"), 0o644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	// Malformed YAML falls back to defaults
	enums, err := LoadReportEnums(configPath)
	if err != nil {
		t.Fatalf("Expected fallback to defaults, got error: %v", err)
	}
	if !enums.IsValidCategory("ROADS") {
		t.Error("Expected default categories after parse failure")
	}
}

func TestGetDefaultReportEnums_CopiesSlices(t *testing.T) {
	enums := GetDefaultReportEnums()
	enums.Categories[0] = "MUTATED"

	if DefaultReportEnums.Categories[0] == "MUTATED" {
		t.Error("GetDefaultReportEnums should not share slices with DefaultReportEnums")
	}
}
