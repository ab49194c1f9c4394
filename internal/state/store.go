// Package state persists the application's collections as versioned JSON
// records, one file per store name. A record whose schema version does not
// match the expected version is discarded and reinitialized to defaults;
// reads never observe a stale schema.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Store manages versioned record files under a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory records are written under.
func (s *Store) Dir() string {
	return s.dir
}

// envelope wraps a record's payload with its schema version.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func (s *Store) recordPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) lockPath(name string) string {
	return filepath.Join(s.dir, name+".lock")
}

// Load reads the named record. A missing file, an undecodable file, or a
// version mismatch all yield defaults(); nothing is written until the next
// Save.
func Load[T any](s *Store, name string, version int, defaults func() T) (T, error) {
	data, err := os.ReadFile(s.recordPath(name))
	if os.IsNotExist(err) {
		return defaults(), nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("read %s record: %w", name, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return defaults(), nil
	}
	if env.Version != version {
		return defaults(), nil
	}

	var value T
	if err := json.Unmarshal(env.Data, &value); err != nil {
		return defaults(), nil
	}
	return value, nil
}

// Save writes the named record atomically.
func Save[T any](s *Store, name string, version int, value T) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", name, err)
	}
	data, err := json.MarshalIndent(envelope{Version: version, Data: payload}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", name, err)
	}

	path := s.recordPath(name)
	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read %s record: %w", name, err)
	}

	tmpFile, err := os.CreateTemp(s.dir, name+".json.tmp")
	if err != nil {
		return fmt.Errorf("create temp %s record: %w", name, err)
	}
	tmpName := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if closeErr := tmpFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write temp %s record: %w", name, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s record: %w", name, err)
	}

	return nil
}

// Update atomically reads, modifies, and writes the named record while
// holding an exclusive file lock.
func Update[T any](s *Store, name string, version int, defaults func() T, fn func(*T) error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(name), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open %s lock: %w", name, err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire %s lock: %w", name, err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	value, err := Load(s, name, version, defaults)
	if err != nil {
		return err
	}

	if err := fn(&value); err != nil {
		return err
	}

	return Save(s, name, version, value)
}
