// Package registry defines the entity registry collaborator: the external
// store that owns canonical organization records and their media records.
// The pipeline reads entities for matching and reads/writes media records by
// entity id; it never creates or deletes entities.
package registry

import (
	"context"

	"github.com/brandmap/brandmap/pkg/types"
)

// Reader provides read access to the registry's entities.
type Reader interface {
	// ListActiveEntities returns all active entities. The pipeline calls
	// this once per batch and matches against the snapshot.
	ListActiveEntities(ctx context.Context) ([]types.Entity, error)
}

// MediaStore provides media record lookup and writes. Implementations must
// guarantee that a write is visible to a subsequent read from the same
// process; cross-process serialization is the caller's concern.
type MediaStore interface {
	// FindMediaRecord returns the current media record for an entity and
	// kind, or errors.ErrNotFound when none exists.
	FindMediaRecord(ctx context.Context, entityID types.EntityID, kind types.MediaKind) (*types.MediaRecord, error)

	// CreateMediaRecord inserts a new media record.
	CreateMediaRecord(ctx context.Context, rec *types.MediaRecord) error

	// UpdateMediaRecord replaces the file URL of an existing record and
	// forces it primary.
	UpdateMediaRecord(ctx context.Context, id string, fileURL string) error
}

// Registry combines entity reads with media record access.
type Registry interface {
	Reader
	MediaStore
}

// Seeder is implemented by registries that can be populated with entity seed
// data, such as the local sqlite registry.
type Seeder interface {
	// SeedEntities inserts entities that are not already present, keyed by
	// normalized canonical name. It returns the number inserted.
	SeedEntities(ctx context.Context, entities []types.Entity) (int, error)
}
