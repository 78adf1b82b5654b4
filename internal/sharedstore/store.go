// Package sharedstore is the file-backed key-value channel shared between the
// host application process and the widget rendering process. Both point at
// the same app-group directory; each key is one JSON file written atomically,
// so writes are last-writer-wins at single-key granularity with no cross-key
// transactions.
package sharedstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doodlemate-companion/internal/domain"
)

// Store persists JSON-serializable values under namespaced keys,
// durable across process restarts.
type Store struct {
	dir string
}

// New opens (creating if needed) a store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put marshals v and replaces the value under key. The write goes through a
// temp file plus rename so a concurrent reader sees either the old value or
// the new one, never a torn write.
func (s *Store) Put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Get unmarshals the last written value for key into dest.
// Returns domain.ErrNotFound if the key was never written or was cleared.
func (s *Store) Get(key string, dest interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// Clear removes key. Clearing an absent key is not an error.
func (s *Store) Clear(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
