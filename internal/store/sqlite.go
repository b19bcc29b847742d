package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps the dataset as a JSON document in a local SQLite file.
// Each save stamps a new revision id.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteStore(ctx context.Context, dbPath, path string, logger logging.Logger) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, &Error{Op: "open", Backend: BackendSQLite, Err: fmt.Errorf("database path is required")}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
		return nil, &Error{Op: "open", Backend: BackendSQLite, Err: err}
	}
	if err := RunMigrations(dbPath); err != nil {
		return nil, &Error{Op: "migrate", Backend: BackendSQLite, Err: err}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &Error{Op: "open", Backend: BackendSQLite, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &Error{Op: "open", Backend: BackendSQLite, Err: err}
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if path == "" {
		path = DefaultPath
	}
	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// RunMigrations brings the schema at dbPath up to date.
func RunMigrations(dbPath string) error {
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Save overwrites the dataset at the store path.
func (s *SQLiteStore) Save(ctx context.Context, rows []models.RawRow) error {
	if rows == nil {
		rows = []models.RawRow{}
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return &Error{Op: "save", Backend: BackendSQLite, Err: err}
	}
	revision := uuid.NewString()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO datasets (path, revision, payload, row_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			revision = excluded.revision,
			payload = excluded.payload,
			row_count = excluded.row_count,
			updated_at = excluded.updated_at`,
		s.path, revision, string(payload), len(rows), time.Now().UTC())
	if err != nil {
		return &Error{Op: "save", Backend: BackendSQLite, Err: err}
	}

	s.logger.Info("Saved dataset",
		logging.F(logging.FieldBackend, BackendSQLite),
		logging.F(logging.FieldRevision, revision),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}

// Load reads the dataset at the store path.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.RawRow, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM datasets WHERE path = ?`, s.path).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.RawRow{}, nil
	}
	if err != nil {
		return nil, &Error{Op: "load", Backend: BackendSQLite, Err: err}
	}

	rows := []models.RawRow{}
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil, &Error{Op: "load", Backend: BackendSQLite, Err: fmt.Errorf("decode payload: %w", err)}
	}
	return rows, nil
}

// Revision returns the id stamped by the last save, or "" if none.
func (s *SQLiteStore) Revision(ctx context.Context) (string, error) {
	var revision string
	err := s.db.QueryRowContext(ctx, `SELECT revision FROM datasets WHERE path = ?`, s.path).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", &Error{Op: "revision", Backend: BackendSQLite, Err: err}
	}
	return revision, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Name() string { return BackendSQLite }
