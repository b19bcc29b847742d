package store

import (
	"context"
	"sync"

	"fjacquet/dre-report/internal/models"
)

// MemoryStore keeps the dataset in process. The error fields let tests
// simulate backend failures.
type MemoryStore struct {
	mu    sync.Mutex
	rows  []models.RawRow
	saves int

	SaveError error
	LoadError error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored rows with a copy of rows.
func (m *MemoryStore) Save(_ context.Context, rows []models.RawRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return &Error{Op: "save", Backend: BackendMemory, Err: m.SaveError}
	}
	m.rows = append([]models.RawRow(nil), rows...)
	m.saves++
	return nil
}

// Load returns a copy of the stored rows.
func (m *MemoryStore) Load(_ context.Context) ([]models.RawRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, &Error{Op: "load", Backend: BackendMemory, Err: m.LoadError}
	}
	return append([]models.RawRow{}, m.rows...), nil
}

// Saves returns how many successful saves happened.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Name() string { return BackendMemory }
