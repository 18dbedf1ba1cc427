// Package local implements the local filesystem storage driver.
package local

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage stores files directly under a configured uploads directory.
type Storage struct {
	basePath string
}

// New creates a local storage driver rooted at basePath, creating the
// directory if it does not exist.
func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

// Upload writes data under filename, overwriting any existing file.
func (s *Storage) Upload(ctx context.Context, filename string, data []byte) error {
	fullPath := s.path(filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Download reads the file back. Missing files satisfy fs.ErrNotExist.
func (s *Storage) Download(ctx context.Context, filename string) ([]byte, error) {
	data, err := os.ReadFile(s.path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s: %w", filename, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// Delete removes the file. Deleting a missing file succeeds silently.
func (s *Storage) Delete(ctx context.Context, filename string) error {
	if err := os.Remove(s.path(filename)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// Exists checks for the file on disk.
func (s *Storage) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := os.Stat(s.path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}
	return true, nil
}

// Type returns "local".
func (s *Storage) Type() string {
	return "local"
}

// BasePath returns the uploads directory the driver writes under.
func (s *Storage) BasePath() string {
	return s.basePath
}

func (s *Storage) path(filename string) string {
	return filepath.Join(s.basePath, filepath.Base(filename))
}
