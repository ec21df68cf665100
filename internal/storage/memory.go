package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryObject struct {
	data        []byte
	contentType string
	storedAt    time.Time
}

// MemoryStore is an in-process BlobStore used in tests and local development.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject
	baseURL string
}

// NewMemoryStore creates an empty in-memory blob store. URLs are formed by
// joining baseURL and the key.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Put stores a blob, rejecting overwrites.
func (m *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.objects[key]; exists {
		return ErrKeyExists
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = memoryObject{data: stored, contentType: contentType, storedAt: time.Now()}
	return nil
}

// Delete removes a blob by key. Deleting an absent key is not an error,
// matching S3 semantics.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// List returns all blobs under the given prefix, ordered by key.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var objects []Object
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, Object{
				Key:          key,
				Size:         int64(len(obj.data)),
				LastModified: obj.storedAt,
			})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// PublicURL returns the public URL for a stored blob.
func (m *MemoryStore) PublicURL(key string) string {
	return m.baseURL + "/" + key
}

// Has reports whether a blob exists for key. Test helper.
func (m *MemoryStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// Len returns the number of stored blobs. Test helper.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
