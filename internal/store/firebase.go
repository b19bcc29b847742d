package store

import (
	"context"
	"fmt"
	"time"

	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/models"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// documentRef is the part of a Realtime Database reference the store needs.
// *db.Ref satisfies it.
type documentRef interface {
	Get(ctx context.Context, v interface{}) error
	Set(ctx context.Context, v interface{}) error
}

// FirebaseStore keeps the dataset as a JSON array at one Realtime Database
// path.
type FirebaseStore struct {
	ref    documentRef
	path   string
	logger logging.Logger
}

// NewFirebaseStore connects to the Realtime Database at databaseURL. When
// credentialsFile is empty, Application Default Credentials are used.
func NewFirebaseStore(ctx context.Context, databaseURL, credentialsFile, path string, logger logging.Logger) (*FirebaseStore, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if databaseURL == "" {
		return nil, &Error{Op: "connect", Backend: BackendFirebase, Err: fmt.Errorf("database URL is required")}
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opts...)
	if err != nil {
		return nil, &Error{Op: "connect", Backend: BackendFirebase, Err: fmt.Errorf("failed to initialize Firebase app: %w", err)}
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, &Error{Op: "connect", Backend: BackendFirebase, Err: fmt.Errorf("failed to create database client: %w", err)}
	}

	logger.Debug("Connected to Firebase Realtime Database",
		logging.F(logging.FieldBackend, BackendFirebase))
	return newFirebaseStoreWithRef(client.NewRef(path), path, logger), nil
}

func newFirebaseStoreWithRef(ref documentRef, path string, logger logging.Logger) *FirebaseStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &FirebaseStore{ref: ref, path: path, logger: logger}
}

// Save overwrites the dataset at the store path.
func (s *FirebaseStore) Save(ctx context.Context, rows []models.RawRow) error {
	start := time.Now()
	if rows == nil {
		rows = []models.RawRow{}
	}
	if err := s.ref.Set(ctx, rows); err != nil {
		return &Error{Op: "save", Backend: BackendFirebase, Err: err}
	}
	s.logger.Info("Saved dataset",
		logging.F(logging.FieldBackend, BackendFirebase),
		logging.F(logging.FieldCount, len(rows)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return nil
}

// Load reads the dataset at the store path.
func (s *FirebaseStore) Load(ctx context.Context) ([]models.RawRow, error) {
	var rows []models.RawRow
	if err := s.ref.Get(ctx, &rows); err != nil {
		return nil, &Error{Op: "load", Backend: BackendFirebase, Err: err}
	}
	if rows == nil {
		rows = []models.RawRow{}
	}
	return rows, nil
}

// Close is a no-op; the database client holds no resources to release.
func (s *FirebaseStore) Close() error { return nil }

func (s *FirebaseStore) Name() string { return BackendFirebase }
