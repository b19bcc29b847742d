// Package store persists the uploaded dataset as a whole. Every Save
// overwrites the previous dataset at the configured path.
package store

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/models"
)

// Backend names accepted by New.
const (
	BackendNone     = "none"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendFirebase = "firebase"
)

// DefaultPath is the root path of the dataset in the store.
const DefaultPath = "/"

// DatasetStore saves and loads the full list of raw rows.
type DatasetStore interface {
	Save(ctx context.Context, rows []models.RawRow) error
	// Load returns an empty slice when nothing has been saved yet.
	Load(ctx context.Context) ([]models.RawRow, error)
	Close() error
	Name() string
}

// Error wraps a failed store operation.
type Error struct {
	Op      string
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s store: %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config selects and configures a backend.
type Config struct {
	Backend         string
	Path            string
	DatabaseURL     string
	CredentialsFile string
	SQLitePath      string
}

// New builds the store for cfg.Backend. It returns a nil store for
// BackendNone.
func New(ctx context.Context, cfg Config, logger logging.Logger) (DatasetStore, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		s, err := NewSQLiteStore(ctx, cfg.SQLitePath, cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendFirebase:
		s, err := NewFirebaseStore(ctx, cfg.DatabaseURL, cfg.CredentialsFile, cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
