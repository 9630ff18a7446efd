package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/hashstructure/v2"

	apperrors "github.com/tmaehler/airband/internal/errors"
)

const (
	// DefaultFileName is the default name for the library file.
	DefaultFileName = "library.json"
)

// Store owns the durable copy of the station library. Writes are
// write-through: every committed mutation is flushed to disk before Update
// returns, so a crash never loses more than the in-flight action.
type Store struct {
	path string

	mu       sync.Mutex
	lib      *Library
	lastHash uint64
	loadWarn error // non-fatal problem noticed at load time
}

// Open loads the library from the given path. If path is empty, the default
// location (~/.config/airband/library.json) is used. An absent or unparseable
// file yields the default library; corruption never fails startup.
func Open(path string) (*Store, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		path = filepath.Join(configDir, "airband", DefaultFileName)
	}

	s := &Store{path: path}
	s.lib, s.loadWarn = load(path)
	s.lastHash, _ = hashstructure.Hash(s.lib, hashstructure.FormatV2, nil)
	return s, nil
}

func load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultLibrary(), nil // first run
		}
		return DefaultLibrary(), fmt.Errorf("failed to read library file: %w", err)
	}

	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return DefaultLibrary(), fmt.Errorf("failed to parse library file: %w", err)
	}

	lib.Normalize()
	if err := lib.Validate(); err != nil {
		return DefaultLibrary(), err
	}
	return &lib, nil
}

// Library returns the current in-memory library. The returned value must be
// treated as read-only; use Update to change it.
func (s *Store) Library() *Library {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib
}

// LoadWarning returns the non-fatal problem noticed while loading, if any.
// A warning means the on-disk state was replaced with the default library.
func (s *Store) LoadWarning() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadWarn
}

// Update applies a pure transformation to the library, validates the result,
// and flushes it to disk. On a validation failure the original library is
// untouched. On a flush failure the new library is kept in memory so the
// session stays usable, and the error reports the degraded state.
func (s *Store) Update(mutate func(*Library) (*Library, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.lib)
	if err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	s.lib = next
	if err := s.flush(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrLibraryPersist, err)
	}
	return nil
}

// Save flushes the current library to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flush(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrLibraryPersist, err)
	}
	return nil
}

// flush writes the library atomically: marshal to a temp file in the target
// directory, then rename over the destination. A kill mid-write can never
// leave a half-written file behind. Writes with an unchanged content hash
// are skipped. Callers must hold s.mu.
func (s *Store) flush() error {
	hash, hashErr := hashstructure.Hash(s.lib, hashstructure.FormatV2, nil)
	if hashErr == nil && hash == s.lastHash {
		if _, err := os.Stat(s.path); err == nil {
			return nil
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create library directory: %w", err)
	}

	data, err := json.MarshalIndent(s.lib, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".library-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write library: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set library permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace library file: %w", err)
	}

	if hashErr == nil {
		s.lastHash = hash
	}
	return nil
}

// Path returns the path to the library file.
func (s *Store) Path() string {
	return s.path
}
