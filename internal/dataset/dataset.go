// Package dataset loads the working record set, either from an upload or
// from the configured store, and keeps the store in sync with uploads.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/models"
	"fjacquet/dre-report/internal/normalizer"
	"fjacquet/dre-report/internal/parsererror"
	"fjacquet/dre-report/internal/store"
)

// Reader reads uploads into raw rows. *spreadsheet.Loader satisfies it.
type Reader interface {
	Load(ctx context.Context, path string) ([]models.RawRow, error)
	Read(name string, r io.Reader) ([]models.RawRow, error)
}

// Source tells where a dataset came from.
type Source string

const (
	SourceUpload Source = "upload"
	SourceStore  Source = "store"
)

// Dataset is a loaded working set.
type Dataset struct {
	Source  Source
	Rows    []models.RawRow
	Records []models.TransactionRecord
	// StoreErr is set when the store could not be written after an upload.
	// The dataset is still usable.
	StoreErr error
}

// Service loads datasets.
type Service struct {
	reader       Reader
	store        store.DatasetStore
	saveOnUpload bool
	logger       logging.Logger
}

// NewService creates a Service. st may be nil when no store is configured.
func NewService(reader Reader, st store.DatasetStore, saveOnUpload bool, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Service{reader: reader, store: st, saveOnUpload: saveOnUpload, logger: logger}
}

// HasStore reports whether a store is configured.
func (s *Service) HasStore() bool {
	return s.store != nil
}

// Load reads inputPath, or the store when inputPath is empty. It returns
// parsererror.ErrEmptyUpload when there is nothing to show.
func (s *Service) Load(ctx context.Context, inputPath string) (*Dataset, error) {
	if inputPath == "" {
		return s.LoadFromStore(ctx)
	}
	rows, err := s.reader.Load(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, rows, inputPath), nil
}

// Upload reads an uploaded stream named name.
func (s *Service) Upload(ctx context.Context, name string, r io.Reader) (*Dataset, error) {
	rows, err := s.reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, rows, name), nil
}

// LoadFromStore returns the stored dataset. A store failure is logged and
// reported as an empty dataset.
func (s *Service) LoadFromStore(ctx context.Context) (*Dataset, error) {
	if s.store == nil {
		return nil, parsererror.ErrEmptyUpload
	}
	rows, err := s.store.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load dataset from store",
			logging.F(logging.FieldBackend, s.store.Name()))
		return nil, fmt.Errorf("%w: %v", parsererror.ErrEmptyUpload, err)
	}
	if len(rows) == 0 {
		return nil, parsererror.ErrEmptyUpload
	}
	s.logger.Info("Loaded dataset from store",
		logging.F(logging.FieldBackend, s.store.Name()),
		logging.F(logging.FieldCount, len(rows)))
	return s.build(SourceStore, rows), nil
}

// Push writes rows to the store regardless of save_on_upload.
func (s *Service) Push(ctx context.Context, rows []models.RawRow) error {
	if s.store == nil {
		return errors.New("no store configured")
	}
	return s.store.Save(ctx, rows)
}

func (s *Service) accept(ctx context.Context, rows []models.RawRow, name string) *Dataset {
	ds := s.build(SourceUpload, rows)
	stats := normalizer.Summarize(rows, ds.Records)
	s.logger.Info("Normalized upload",
		logging.F(logging.FieldFile, name),
		logging.F(logging.FieldCount, stats.Rows),
		logging.F("undated_rows", stats.UndatedRows),
		logging.F("unreadable_amounts", stats.ZeroAmountRows))

	if s.store != nil && s.saveOnUpload {
		if err := s.store.Save(ctx, rows); err != nil {
			s.logger.WithError(err).Error("Failed to save upload to store, keeping it in memory",
				logging.F(logging.FieldBackend, s.store.Name()))
			ds.StoreErr = err
		}
	}
	return ds
}

func (s *Service) build(source Source, rows []models.RawRow) *Dataset {
	return &Dataset{
		Source:  source,
		Rows:    rows,
		Records: normalizer.NormalizeAll(rows),
	}
}
