package host

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrEmptyKey is returned when a metadata key is blank.
	ErrEmptyKey = errors.New("metadata key is empty")
	// ErrNoMetadata is returned when a file exposes no tag store.
	ErrNoMetadata = errors.New("file has no metadata")
)

// Metadata is a mutable key/value tag store attached to a file or album.
type Metadata interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Keys() []string
}

// File is a loaded media file.
type File interface {
	Path() string
	Metadata() Metadata
}

// Album groups files that share album-level metadata.
type Album struct {
	Title    string
	Artist   string
	Metadata Metadata
}

// MemoryMetadata is a concurrency-safe in-memory Metadata. The zero value is
// ready to use.
type MemoryMetadata struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryMetadata returns a store seeded with values.
func NewMemoryMetadata(values map[string]string) *MemoryMetadata {
	m := &MemoryMetadata{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemoryMetadata) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. Keys are trimmed and must not be empty.
func (m *MemoryMetadata) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryMetadata) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of all stored values.
func (m *MemoryMetadata) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
