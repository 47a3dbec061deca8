// Package memory provides an in-memory registry, used as the test substitute
// for the hosted registry and for dry runs that should not touch real data.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/normalize"
	"github.com/brandmap/brandmap/pkg/types"
)

// Registry is a thread-safe in-memory registry.
type Registry struct {
	mu       sync.RWMutex
	entities []types.Entity
	media    map[string]*types.MediaRecord // keyed by record id
}

// New creates an in-memory registry preloaded with the given entities.
func New(entities ...types.Entity) *Registry {
	r := &Registry{
		media: make(map[string]*types.MediaRecord),
	}
	r.entities = append(r.entities, entities...)
	return r
}

// ListActiveEntities returns the active entities in insertion order.
func (r *Registry) ListActiveEntities(_ context.Context) ([]types.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []types.Entity
	for _, e := range r.entities {
		if e.Active {
			active = append(active, e)
		}
	}
	return active, nil
}

// FindMediaRecord returns the current media record for (entityID, kind).
func (r *Registry) FindMediaRecord(_ context.Context, entityID types.EntityID, kind types.MediaKind) (*types.MediaRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.media {
		if rec.EntityID == entityID && rec.Kind == kind {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, errors.ErrNotFound
}

// CreateMediaRecord inserts a new media record, minting an id when absent.
func (r *Registry) CreateMediaRecord(_ context.Context, rec *types.MediaRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	cp := *rec
	r.media[rec.ID] = &cp
	return nil
}

// UpdateMediaRecord replaces the file URL of an existing record in place and
// forces it primary.
func (r *Registry) UpdateMediaRecord(_ context.Context, id string, fileURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.media[id]
	if !ok {
		return errors.NewRegistryError("update", "media", id, errors.ErrNotFound)
	}
	rec.FileURL = fileURL
	rec.IsPrimary = true
	return nil
}

// SeedEntities inserts entities whose normalized canonical name is not
// already present, minting ids when absent.
func (r *Registry) SeedEntities(_ context.Context, entities []types.Entity) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[string]bool, len(r.entities))
	for _, e := range r.entities {
		existing[normalize.Name(e.CanonicalName)] = true
	}

	inserted := 0
	for _, e := range entities {
		key := normalize.Name(e.CanonicalName)
		if key == "" || existing[key] {
			continue
		}
		if e.ID == "" {
			e.ID = types.EntityID(uuid.NewString())
		}
		r.entities = append(r.entities, e)
		existing[key] = true
		inserted++
	}
	return inserted, nil
}

// MediaRecords returns a copy of all media records, for assertions in tests.
func (r *Registry) MediaRecords() []types.MediaRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]types.MediaRecord, 0, len(r.media))
	for _, rec := range r.media {
		records = append(records, *rec)
	}
	return records
}

// MediaCount returns the number of media records for (entityID, kind), for
// duplicate-detection assertions in tests.
func (r *Registry) MediaCount(entityID types.EntityID, kind types.MediaKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, rec := range r.media {
		if rec.EntityID == entityID && rec.Kind == kind {
			n++
		}
	}
	return n
}

// String describes the registry contents, useful when debugging tests.
func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("memory registry: %d entities, %d media records", len(r.entities), len(r.media))
}
