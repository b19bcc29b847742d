// Package validation checks command arguments before any work is done.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory, expected a spreadsheet: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input is not a regular file: %s", path)
	}
	return nil
}

// IsValidExportFormat accepts "" (use the file extension), csv and xlsx.
func IsValidExportFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "csv", "xlsx":
		return nil
	default:
		return fmt.Errorf("unsupported export format: %s. Supported formats are 'csv', 'xlsx'", format)
	}
}

// IsValidReportFormat accepts json, yaml and yml.
func IsValidReportFormat(format string) error {
	switch strings.ToLower(format) {
	case "json", "yaml", "yml":
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'json', 'yaml'", format)
	}
}
