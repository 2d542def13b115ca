package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FileProvider retrieves values from files mounted under a directory,
// one file per key (the common container secret-mount layout).
type FileProvider struct {
	dir string
}

// NewFileProvider creates a provider reading from the given directory.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// GetSecret reads the file named after the key.
func (f *FileProvider) GetSecret(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, key))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// IsAvailable checks that the mount directory exists.
func (f *FileProvider) IsAvailable(ctx context.Context) bool {
	info, err := os.Stat(f.dir)
	return err == nil && info.IsDir()
}
