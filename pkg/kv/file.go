package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one file per slot key under a base directory.
type FileStore struct {
	baseDir string
}

// NewFileStore ensures the base directory exists and returns a handle.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Get reads the slot file, reporting absence when it does not exist.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.resolve(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes the value to a temp file and renames it into place so a
// crash mid-write never leaves a truncated slot.
func (s *FileStore) Set(_ context.Context, key string, value string) error {
	path := s.resolve(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit slot %s: %w", key, err)
	}
	return nil
}

// Remove deletes the slot file if present.
func (s *FileStore) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.resolve(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove slot %s: %w", key, err)
	}
	return nil
}

// Path exposes the underlying absolute path (useful for debugging).
func (s *FileStore) Path(key string) string {
	return s.resolve(key)
}

func (s *FileStore) resolve(key string) string {
	return filepath.Join(s.baseDir, key+".json")
}
