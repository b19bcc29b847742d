// Package export writes the summary pivot and the filtered raw table to CSV
// and Excel files, and reads exported summaries back.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/dre-report/internal/dashboard"
	"fjacquet/dre-report/internal/models"
)

// Export defaults.
const (
	DefaultSheetName = "Resumo"
	DefaultFileName  = "Resumo_Plano_De_Contas.xlsx"
)

// Supported summary formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Options controls the export layout.
type Options struct {
	Delimiter rune
	SheetName string
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.SheetName == "" {
		o.SheetName = DefaultSheetName
	}
	return o
}

// FormatFromPath returns the summary format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export extension %q", ext)
	}
}

// WriteSummary writes table in the given format.
func WriteSummary(w io.Writer, table dashboard.SummaryTable, format string, opts Options) error {
	opts = opts.withDefaults()
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteSummaryCSV(w, table, opts.Delimiter)
	case FormatXLSX:
		return WriteSummaryXLSX(w, table, opts.SheetName)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportSummary writes table to path, choosing the format from the
// extension unless format is set.
func ExportSummary(path string, table dashboard.SummaryTable, format string, opts Options) error {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	return writeFile(path, func(w io.Writer) error {
		return WriteSummary(w, table, format, opts)
	})
}

// ExportRows writes the raw table as CSV to path.
func ExportRows(path string, rows []dashboard.TableRow, opts Options) error {
	opts = opts.withDefaults()
	return writeFile(path, func(w io.Writer) error {
		return WriteRowsCSV(w, rows, opts.Delimiter)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
