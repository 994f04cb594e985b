// Package storage saves uploaded files either on local disk or in a MinIO bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store persists an object and returns the URL clients use to fetch it.
type Store interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
}

// LocalStore writes files under Dir. They are served by the static /uploads route.
type LocalStore struct {
	Dir       string
	URLPrefix string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir, URLPrefix: "/uploads"}, nil
}

func (s *LocalStore) Save(_ context.Context, name, _ string, r io.Reader, _ int64) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + name))
	if clean == "/" || clean == "." {
		return "", fmt.Errorf("invalid object name %q", name)
	}

	path := filepath.Join(s.Dir, clean)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", clean, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", clean, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", clean, err)
	}
	return strings.TrimRight(s.URLPrefix, "/") + "/" + clean, nil
}
