package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	applivestock "github.com/dombastis/backend/internal/application/livestock"
)

var _ applivestock.EvidenceStore = (*LocalEvidenceStore)(nil)

// LocalEvidenceStore stores evidence photos on the local filesystem,
// under a fixed base directory served as static content.
type LocalEvidenceStore struct {
	baseDir string
}

// NewLocalEvidenceStore creates a LocalEvidenceStore rooted at baseDir
func NewLocalEvidenceStore(baseDir string) (*LocalEvidenceStore, error) {
	if baseDir == "" {
		return nil, errors.New("storage base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalEvidenceStore{baseDir: baseDir}, nil
}

// Save writes an evidence photo to disk and returns its relative reference
func (s *LocalEvidenceStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return key, nil
}

// Delete removes an evidence photo. Deleting a missing photo is not an error.
func (s *LocalEvidenceStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve maps a storage key to an absolute path and rejects traversal
func (s *LocalEvidenceStore) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
