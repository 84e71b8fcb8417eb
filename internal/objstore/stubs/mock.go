package stubs

import (
	"context"
	"sync"

	"locustbot/internal/objstore"
)

// MockStore is an in-memory implementation of the ObjectStore interface
type MockStore struct {
	mu      sync.RWMutex
	baseURL string
	bucket  string
	objects map[string][]byte
	types   map[string]string

	// UploadErr, when set, makes every Upload fail with that error
	UploadErr error
}

// NewMockStore creates a new mock object store
func NewMockStore(baseURL, bucket string) *MockStore {
	return &MockStore{
		baseURL: baseURL,
		bucket:  bucket,
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

// Upload stores the object in memory and returns its public URL
func (m *MockStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[objectName] = stored
	m.types[objectName] = contentType
	return objstore.PublicURL(m.baseURL, m.bucket, objectName), nil
}

// Object returns the stored bytes and content type for an object name
func (m *MockStore) Object(objectName string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[objectName]
	return data, m.types[objectName], ok
}

// Len returns the number of stored objects
func (m *MockStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
