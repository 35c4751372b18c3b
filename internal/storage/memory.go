package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

// Object is a stored blob of MemoryStorage.
type Object struct {
	ContentType string
	Data        []byte
}

// MemoryStorage keeps objects in process. Presigned URLs point at a fake host and carry the
// key and expiry so tests can assert on them.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]Object)}
}

func (m *MemoryStorage) presign(method, key string, expires time.Duration) string {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	q := url.Values{"method": {method}, "expires": {expires.String()}}
	return fmt.Sprintf("https://storage.invalid/%s?%s", url.PathEscape(key), q.Encode())
}

func (m *MemoryStorage) GeneratePresignedUploadURL(_ context.Context, objectKey string, _ string, expires time.Duration) (string, error) {
	return m.presign("PUT", objectKey, expires), nil
}

func (m *MemoryStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, expires time.Duration) (string, error) {
	return m.presign("GET", objectKey, expires), nil
}

func (m *MemoryStorage) PutObject(_ context.Context, objectKey string, contentType string, body io.Reader, _ int64) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectKey] = Object{ContentType: contentType, Data: buf.Bytes()}
	return nil
}

func (m *MemoryStorage) DeleteObject(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[objectKey]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, objectKey)
	return nil
}

// Get returns a stored object.
func (m *MemoryStorage) Get(objectKey string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[objectKey]
	return o, ok
}

var _ FileStorage = (*MemoryStorage)(nil)
