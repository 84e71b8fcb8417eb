package stubs

import (
	"context"
	"sync"

	"locustbot/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for testing
type MockDB struct {
	mu      sync.RWMutex
	reports []models.Report
	nextID  int64

	// ListCalls counts ListReports invocations so tests can verify that
	// unauthorized export attempts never read the table
	ListCalls int
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{nextID: 1}
}

// Initialize does nothing for the mock DB
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// SaveReport appends a report and assigns an incrementing identifier
func (m *MockDB) SaveReport(ctx context.Context, report *models.Report) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *report
	stored.ID = m.nextID
	m.nextID++
	m.reports = append(m.reports, stored)
	return stored.ID, nil
}

// ListReports returns a copy of all stored reports in insertion order
func (m *MockDB) ListReports(ctx context.Context) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	out := make([]models.Report, len(m.reports))
	copy(out, m.reports)
	return out, nil
}

// Close does nothing for the mock DB
func (m *MockDB) Close() error {
	return nil
}
