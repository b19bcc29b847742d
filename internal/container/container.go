// Package container provides dependency injection for the dre-report
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/dre-report/internal/aggregator"
	"fjacquet/dre-report/internal/config"
	"fjacquet/dre-report/internal/dataset"
	"fjacquet/dre-report/internal/export"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/report"
	"fjacquet/dre-report/internal/spreadsheet"
	"fjacquet/dre-report/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	loader   *spreadsheet.Loader
	store    store.DatasetStore
	storeErr error
	datasets *dataset.Service
	reports  *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(ctx, cfg, logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg)))
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger.
//
// A store that cannot be opened is not fatal: the error is logged, kept
// for StoreError, and the application runs without persistence.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	loader := spreadsheet.NewLoader(spreadsheet.Options{
		Sheet:     cfg.Input.Sheet,
		Delimiter: cfg.InputDelimiter(),
		Encoding:  cfg.Input.Encoding,
	}, logger)

	st, storeErr := store.New(ctx, store.Config{
		Backend:         cfg.Store.Backend,
		Path:            cfg.Store.Path,
		DatabaseURL:     cfg.Store.Firebase.DatabaseURL,
		CredentialsFile: cfg.Store.Firebase.CredentialsFile,
		SQLitePath:      cfg.Store.SQLite.Path,
	}, logger)
	if storeErr != nil {
		logger.WithError(storeErr).Error("Store unavailable, continuing without persistence",
			logging.F(logging.FieldBackend, cfg.Store.Backend))
		st = nil
	}

	datasets := dataset.NewService(loader, st, cfg.Store.SaveOnUpload, logger)

	backend := store.BackendNone
	if st != nil {
		backend = st.Name()
	}
	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, backend))

	return &Container{
		logger:   logger,
		config:   cfg,
		loader:   loader,
		store:    st,
		storeErr: storeErr,
		datasets: datasets,
		reports:  report.NewReportGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLoader returns the upload reader.
func (c *Container) GetLoader() *spreadsheet.Loader {
	return c.loader
}

// GetStore returns the dataset store, or nil when none is configured or it
// failed to open.
func (c *Container) GetStore() store.DatasetStore {
	return c.store
}

// StoreError returns why the configured store could not be opened.
func (c *Container) StoreError() error {
	return c.storeErr
}

// GetDatasets returns the dataset service.
func (c *Container) GetDatasets() *dataset.Service {
	return c.datasets
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// AggregatorOptions returns the ranking and card settings.
func (c *Container) AggregatorOptions() aggregator.Options {
	return aggregator.Options{
		TopN:                c.config.Dashboard.TopN,
		SalesKeyword:        c.config.Dashboard.SalesKeyword,
		CounterSalesKeyword: c.config.Dashboard.CounterSalesKeyword,
	}
}

// ExportOptions returns the export layout settings.
func (c *Container) ExportOptions() export.Options {
	return export.Options{
		Delimiter: c.config.ExportDelimiter(),
		SheetName: c.config.Export.SheetName,
	}
}

// Close releases the store.
func (c *Container) Close() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
