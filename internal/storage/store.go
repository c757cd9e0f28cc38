// Package storage provides the client-side key-value store the database
// blob is persisted to: a single JSON file of string keys to string values,
// rewritten atomically on every mutation.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a minimal key-value store with string values.
type Store interface {
	// Get returns the value for key and whether the key was present.
	Get(key string) (string, bool, error)

	// Set writes the value for key, overwriting any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// FileStore implements Store on a single JSON file. A missing file reads as
// an empty store; Set and Delete use the temp-file, fsync, rename pattern so
// the file is never left half-written.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a FileStore backed by the given file path. The file
// is created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the value for key, reading the backing file on every call.
func (s *FileStore) Get(key string) (string, bool, error) {
	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set writes the value for key.
func (s *FileStore) Set(key, value string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[key] = value
	return s.persist(entries)
}

// Delete removes key.
func (s *FileStore) Delete(key string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.persist(entries)
}

// load reads the backing file into a map. A missing file is the common
// first-run case and yields an empty map.
func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return entries, nil
}

// persist atomically rewrites the backing file.
func (s *FileStore) persist(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating storage directory: %w", err)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling storage entries: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing storage entries: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
