package cmd

import (
	"context"
	"io"

	"github.com/brandmap/brandmap/internal/config"
	"github.com/brandmap/brandmap/pkg/registry"
	registrysqlite "github.com/brandmap/brandmap/pkg/registry/sqlite"
	registrysupabase "github.com/brandmap/brandmap/pkg/registry/supabase"
	"github.com/brandmap/brandmap/pkg/storage"
	storagefs "github.com/brandmap/brandmap/pkg/storage/fs"
	storagesupabase "github.com/brandmap/brandmap/pkg/storage/supabase"
)

// defaultStorageDir is where assets land when --db is used without --dir.
const defaultStorageDir = "assets"

// newRegistry opens the registry selected by the --db flag: a local SQLite
// file when set, the Supabase registry from SUPABASE_URL and
// SUPABASE_SERVICE_ROLE_KEY otherwise. The returned closer is a no-op for
// remote registries.
func newRegistry() (registry.Registry, io.Closer, error) {
	if dbPath != "" {
		reg, err := registrysqlite.Open(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return reg, reg, nil
	}

	projectURL, err := config.Require(config.KeySupabaseURL)
	if err != nil {
		return nil, nil, err
	}
	serviceKey, err := config.Require(config.KeySupabaseServiceKey)
	if err != nil {
		return nil, nil, err
	}
	return registrysupabase.New(projectURL, serviceKey), nopCloser{}, nil
}

// newStore builds the asset store matching the selected registry backend.
func newStore() (storage.Store, error) {
	if dbPath != "" {
		dir := storageDir
		if dir == "" {
			dir = defaultStorageDir
		}
		return storagefs.New(dir), nil
	}

	projectURL, err := config.Require(config.KeySupabaseURL)
	if err != nil {
		return nil, err
	}
	serviceKey, err := config.Require(config.KeySupabaseServiceKey)
	if err != nil {
		return nil, err
	}
	return storagesupabase.New(projectURL, config.Bucket(), serviceKey), nil
}

// bucketEnsurer is implemented by stores whose backing bucket must exist
// before the first upload.
type bucketEnsurer interface {
	EnsureBucket(ctx context.Context) error
}

// ensureBucket creates the store's bucket when the backend needs one, so a
// fresh project works without manual setup.
func ensureBucket(ctx context.Context, store storage.Store) error {
	be, ok := store.(bucketEnsurer)
	if !ok {
		return nil
	}
	return be.EnsureBucket(ctx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
