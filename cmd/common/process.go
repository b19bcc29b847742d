// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"fjacquet/dre-report/internal/container"
	"fjacquet/dre-report/internal/dashboard"
	"fjacquet/dre-report/internal/dataset"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/parsererror"
	"fjacquet/dre-report/internal/validation"
	"fjacquet/dre-report/internal/viewstate"
)

// MsgNoData is printed when neither --input nor the store provide rows.
const MsgNoData = "Nenhum dado carregado. Informe uma planilha com --input ou envie uma com 'push'."

// ErrNoContainer is returned when a command runs before initialization.
var ErrNoContainer = errors.New("container not initialized")

// LoadDataset reads input, or the stored dataset when input is empty.
func LoadDataset(ctx context.Context, c *container.Container, input string) (*dataset.Dataset, error) {
	if c == nil {
		return nil, ErrNoContainer
	}
	if input != "" {
		if err := validation.IsValidInputFile(input); err != nil {
			return nil, err
		}
	}
	ds, err := c.GetDatasets().Load(ctx, input)
	if err != nil {
		return nil, err
	}
	if ds.StoreErr != nil {
		c.GetLogger().WithError(ds.StoreErr).Warn("Upload was not persisted")
	}
	return ds, nil
}

// NoDataOrError prints MsgNoData to w and returns nil when err only means
// there is nothing to show. Other errors are returned unchanged.
func NoDataOrError(w io.Writer, err error) error {
	if errors.Is(err, parsererror.ErrEmptyUpload) {
		Warning(w, MsgNoData)
		return nil
	}
	return err
}

// BuildDashboard filters ds and computes every dashboard section.
func BuildDashboard(c *container.Container, ds *dataset.Dataset, filters viewstate.Filters) dashboard.Dashboard {
	state := viewstate.New(ds.Records).WithFilters(filters)
	d := dashboard.Build(state, c.AggregatorOptions())
	c.GetLogger().Debug("Dashboard computed",
		logging.F(logging.FieldCount, d.RecordCount),
		logging.F(logging.FieldFiltered, d.FilteredCount),
		logging.F(logging.FieldStore, filters.Store),
		logging.F(logging.FieldAccount, filters.Account))
	return d
}

// OpenOutput returns a writer for path, falling back to stdout when path
// is empty or "-". The returned close function must always be called.
func OpenOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
