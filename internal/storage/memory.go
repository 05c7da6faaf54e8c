package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Object is an uploaded blob held by MemoryStore.
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStore keeps uploads in process memory. Used for local runs
// (STORAGE_DRIVER=memory) and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string]Object
}

func NewMemoryStore(bucket string) *MemoryStore {
	return &MemoryStore{
		bucket:  bucket,
		objects: make(map[string]Object),
	}
}

func (m *MemoryStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("read upload body: %w", err)
	}

	m.mu.Lock()
	m.objects[key] = Object{Data: buf.Bytes(), ContentType: contentType}
	m.mu.Unlock()

	return fmt.Sprintf("memory://%s/%s", m.bucket, key), nil
}

func (m *MemoryStore) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
