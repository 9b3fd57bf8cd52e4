// Package storage provides the scoped durable key-value store that backs the
// cart, wishlist and preferences. Values are opaque strings; a miss is
// reported through the boolean result rather than an error.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/renameio/v2"
)

// ErrInvalidKey is returned for keys that are empty or would escape the
// store's directory.
var ErrInvalidKey = errors.New("invalid storage key")

// Store is a get/set key-value capability.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// ValidateKey reports whether key can be used with any Store.
func ValidateKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || trimmed != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// FileStore keeps each key in its own file under dir: <key>.json, or <key>
// as-is when the key already carries an extension. Writes are fsynced to a
// temp file and renamed over the old one, so a crash leaves either the old
// value or the new one.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// Open returns a FileStore rooted at dir, creating the directory if needed.
func Open(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("storage dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file backing key.
func (s *FileStore) Path(key string) string {
	if filepath.Ext(key) != "" {
		return filepath.Join(s.dir, key)
	}
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *FileStore) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := renameio.WriteFile(s.Path(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// MemoryStore is an in-process Store used by tests and headless callers.
// The zero value is ready to use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	writes int

	// FailSet, when non-nil, is returned by every Set.
	FailSet error
	// FailGet, when non-nil, is returned by every Get.
	FailGet error
}

// NewMemory returns a MemoryStore seeded with values.
func NewMemory(values map[string]string) *MemoryStore {
	m := &MemoryStore{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailGet != nil {
		return "", false, m.FailGet
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns the number of successful Set calls.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
