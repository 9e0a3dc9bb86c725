package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"steam-library-service/internal/domain"
)

// ErrCorruptSnapshot marks a snapshot file with nonzero but unparseable
// content. Loading must fail loudly rather than return an empty library,
// since an empty library would overwrite every tracked account on the next
// save.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// FileStore persists the whole account library as a single JSON document.
// Every mutation rewrites the full snapshot; the rename in Save is the only
// visible state transition, so readers never observe a partial write.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore constructs a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path exposes the snapshot location (primarily for testing).
func (s *FileStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load reads the current snapshot. A missing or zero-byte file is the
// documented "no snapshot yet" case and yields an empty library. Load takes
// no lock: the atomic rename in Save guarantees a complete document.
func (s *FileStore) Load() (domain.Library, error) {
	if s == nil {
		return domain.Library{}, errors.New("store not configured")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewLibrary(), nil
		}
		return domain.Library{}, fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) == 0 {
		return domain.NewLibrary(), nil
	}

	var lib domain.Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return domain.Library{}, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, s.path, err)
	}
	if lib.Accounts == nil {
		lib.Accounts = make(map[string]domain.Account)
	}
	return lib, nil
}

// Save writes the full snapshot durably: temp file in the same directory,
// flush, fsync, then atomic rename over the canonical path.
func (s *FileStore) Save(lib domain.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(lib)
}

// Update runs a read-modify-write cycle as a single transaction: the store
// lock is held across load, mutation, and save, so concurrent refreshes of
// different usernames cannot lose each other's writes. The mutation fn may
// return a domain error to abort with nothing persisted.
func (s *FileStore) Update(fn func(*domain.Library) error) error {
	if s == nil {
		return errors.New("store not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(&lib); err != nil {
		return err
	}
	return s.save(lib)
}

func (s *FileStore) save(lib domain.Library) error {
	if lib.Accounts == nil {
		lib.Accounts = make(map[string]domain.Account)
	}
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
