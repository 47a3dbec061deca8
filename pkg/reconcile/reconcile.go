// Package reconcile maintains the registry's single current media record per
// (entity, kind). Reconciliation is a lookup-then-write: update the existing
// record's URL in place when one exists, insert the first record otherwise.
// The lookup-then-write sequence is serialized per key so concurrent workers
// resolving to the same entity cannot both insert.
package reconcile

import (
	"context"
	"sync"

	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/logging"
	"github.com/brandmap/brandmap/pkg/registry"
	"github.com/brandmap/brandmap/pkg/types"
)

// Outcome reports what a reconciliation did.
type Outcome int

// Reconciliation outcomes.
const (
	// Inserted means no record existed and a new primary record was
	// created.
	Inserted Outcome = iota
	// Updated means the existing record's URL was replaced in place.
	Updated
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	if o == Updated {
		return "updated"
	}
	return "inserted"
}

// Reconciler upserts media records against a registry media store.
type Reconciler struct {
	store registry.MediaStore

	mu    sync.Mutex
	locks map[lockKey]*sync.Mutex
}

type lockKey struct {
	entityID types.EntityID
	kind     types.MediaKind
}

// New creates a reconciler over the given media store.
func New(store registry.MediaStore) *Reconciler {
	return &Reconciler{
		store: store,
		locks: make(map[lockKey]*sync.Mutex),
	}
}

// Reconcile points the current media record for (entityID, kind) at url,
// inserting the record if this is the first asset of its kind for the entity.
// The record is always left primary, and at most one record per key exists
// afterwards no matter how many times or how concurrently Reconcile runs.
func (r *Reconciler) Reconcile(ctx context.Context, entityID types.EntityID, kind types.MediaKind, url string) (Outcome, error) {
	lock := r.keyLock(entityID, kind)
	lock.Lock()
	defer lock.Unlock()

	existing, err := r.store.FindMediaRecord(ctx, entityID, kind)
	switch {
	case err == nil:
		if err := r.store.UpdateMediaRecord(ctx, existing.ID, url); err != nil {
			return Updated, errors.WrapRegistry("update", "media", existing.ID, err)
		}
		logging.Ctx(ctx).Debug().
			Str("entity_id", entityID.String()).
			Str("kind", kind.String()).
			Msg("updated existing media record")
		return Updated, nil

	case errors.IsNotFound(err):
		rec := &types.MediaRecord{
			EntityID:     entityID,
			Kind:         kind,
			FileURL:      url,
			IsPrimary:    true,
			DisplayOrder: 1,
		}
		if err := r.store.CreateMediaRecord(ctx, rec); err != nil {
			return Inserted, errors.WrapRegistry("insert", "media", entityID.String(), err)
		}
		logging.Ctx(ctx).Debug().
			Str("entity_id", entityID.String()).
			Str("kind", kind.String()).
			Msg("created media record")
		return Inserted, nil

	default:
		return Inserted, errors.WrapRegistry("find", "media", entityID.String(), err)
	}
}

// keyLock returns the mutex serializing writers for one (entity, kind) pair.
func (r *Reconciler) keyLock(entityID types.EntityID, kind types.MediaKind) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lockKey{entityID: entityID, kind: kind}
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}
