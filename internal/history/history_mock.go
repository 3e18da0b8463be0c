package history

import (
	"time"

	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordSession implements the HistoryStore interface.
func (m *MockHistoryStore) RecordSession(source schema.SessionSource, createdAt time.Time, scores schema.ScoreSet, results []schema.PresetResult) (string, error) {
	args := m.Called(source, createdAt, scores, results)
	return args.String(0), args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllSessions implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllSessions() ([]schema.SessionRunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SessionRunRecord)
	return records, args.Error(1)
}

// GetAllMatches implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllMatches() ([]schema.PresetMatchRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.PresetMatchRecord)
	return records, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
