package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	mu        sync.RWMutex
	rosters   map[uuid.UUID]*Roster
	sheets    map[string]*sheet.Spec
	pingError error
	saveError error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		rosters: make(map[uuid.UUID]*Roster),
		sheets:  make(map[string]*sheet.Spec),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError makes every SaveRoster fail with err.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveRoster(ctx context.Context, r *Roster) error {
	if r == nil {
		return errors.New("roster cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	cp := *r
	cp.Entries = slices.Clone(r.Entries)
	m.rosters[r.SessionID] = &cp
	return nil
}

func (m *MockStorage) LoadRoster(ctx context.Context, id uuid.UUID) (*Roster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rosters[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	cp.Entries = slices.Clone(r.Entries)
	return &cp, nil
}

func (m *MockStorage) DeleteRoster(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rosters, id)
	return nil
}

func (m *MockStorage) ListRosters(ctx context.Context) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.rosters))
	for id := range m.rosters {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockStorage) GetSheetSpec(ctx context.Context, id string) (*sheet.Spec, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	spec, ok := m.sheets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}
	return spec, nil
}

func (m *MockStorage) ListSheets(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sheets))
	for id := range m.sheets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// AddSheetSpec adds a sheet spec to the mock storage (for testing)
func (m *MockStorage) AddSheetSpec(spec *sheet.Spec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[spec.ID] = spec
}
