// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package images

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store abstracts durable byte storage for image assets. The production
// implementation is DiskStore; tests substitute in-memory fakes.
type Store interface {
	// Write persists data under filename, overwriting any existing file.
	Write(filename string, data []byte) error

	// Exists reports whether filename is present in storage.
	Exists(filename string) (bool, error)

	// Delete removes filename from storage. Deleting a missing file is
	// not an error.
	Delete(filename string) error

	// List returns all stored filenames.
	List() ([]string, error)
}

// DiskStore stores image assets as files in a single flat directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the storage directory if needed and returns a
// store rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the storage directory path.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Path returns the absolute path for a stored filename. The filename must
// already be validated against the generated pattern; Path itself strips
// any directory components as a second line of defense.
func (s *DiskStore) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

// Write implements Store.
func (s *DiskStore) Write(filename string, data []byte) error {
	if err := os.WriteFile(s.Path(filename), data, 0o640); err != nil {
		return fmt.Errorf("failed to write image %s: %w", filename, err)
	}
	return nil
}

// Exists implements Store.
func (s *DiskStore) Exists(filename string) (bool, error) {
	_, err := os.Stat(s.Path(filename))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat image %s: %w", filename, err)
}

// Delete implements Store. A missing file is treated as already deleted.
func (s *DiskStore) Delete(filename string) error {
	err := os.Remove(s.Path(filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image %s: %w", filename, err)
	}
	return nil
}

// List implements Store. Subdirectories are ignored.
func (s *DiskStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list image directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
