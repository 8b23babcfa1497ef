package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"

	"carrental-backend/internal/logger"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStore keeps each document as a JSON file in a local directory
// This is the default backend for single-user demo setups
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if it doesn't exist
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get reads the document file for key
func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	logger.StorageCall(TypeFile, "get", key)
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.StorageResult(TypeFile, "get", key, 0, nil)
		return nil, ErrKeyNotFound
	}
	logger.StorageResult(TypeFile, "get", key, len(data), err)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// Put replaces the document file through a temp file and rename
func (f *FileStore) Put(ctx context.Context, key string, data []byte) error {
	logger.StorageCall(TypeFile, "put", key)
	path, err := f.path(key)
	if err != nil {
		return err
	}

	tmp := filepath.Join(f.dir, fmt.Sprintf(".%s.%s.tmp", key, uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		logger.StorageResult(TypeFile, "put", key, 0, err)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		logger.StorageResult(TypeFile, "put", key, 0, err)
		return fmt.Errorf("failed to replace document: %w", err)
	}

	logger.StorageResult(TypeFile, "put", key, len(data), nil)
	return nil
}

// GetLocalPath returns the filesystem path for a key
func (f *FileStore) GetLocalPath(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return f.GetLocalPath(key), nil
}
