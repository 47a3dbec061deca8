// Package fs provides a filesystem-backed asset store for local runs and
// tests. Objects live under a base directory and the public URL is formed
// from a configurable base, defaulting to file:// paths.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/brandmap/brandmap/pkg/errors"
)

// Store writes assets under a base directory with overwrite semantics.
type Store struct {
	dir     string
	baseURL string
}

// Option configures a Store.
type Option func(*Store)

// WithBaseURL sets the public URL prefix returned for stored objects, for
// setups where the directory is served over HTTP.
func WithBaseURL(base string) Option {
	return func(s *Store) {
		s.baseURL = strings.TrimSuffix(base, "/")
	}
}

// New creates a filesystem store rooted at dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put writes data at key, creating parent directories as needed. Writing the
// same key twice replaces the file contents.
func (s *Store) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.NewStorageError("", key, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.NewStorageError("", key, err)
	}
	return s.publicURL(key), nil
}

// publicURL returns the stable URL for a key.
func (s *Store) publicURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return "file://" + filepath.ToSlash(filepath.Join(s.dir, key))
}
