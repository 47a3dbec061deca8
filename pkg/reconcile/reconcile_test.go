package reconcile

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/registry/memory"
	"github.com/brandmap/brandmap/pkg/types"
)

func TestReconcileInsertThenUpdate(t *testing.T) {
	reg := memory.New()
	r := New(reg)
	ctx := context.Background()

	outcome, err := r.Reconcile(ctx, "1", types.MediaKindLogo, "https://cdn.example.com/a/logo.png")
	require.NoError(t, err)
	assert.Equal(t, Inserted, outcome)

	outcome, err = r.Reconcile(ctx, "1", types.MediaKindLogo, "https://cdn.example.com/a/logo-v2.png")
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	// At most one record for the pair, pointing at the latest URL.
	assert.Equal(t, 1, reg.MediaCount("1", types.MediaKindLogo))
	rec, err := reg.FindMediaRecord(ctx, "1", types.MediaKindLogo)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a/logo-v2.png", rec.FileURL)
	assert.True(t, rec.IsPrimary)
	assert.Equal(t, 1, rec.DisplayOrder)
}

func TestReconcileSeparateKinds(t *testing.T) {
	reg := memory.New()
	r := New(reg)
	ctx := context.Background()

	_, err := r.Reconcile(ctx, "1", types.MediaKindLogo, "u1")
	require.NoError(t, err)
	_, err = r.Reconcile(ctx, "1", types.MediaKind("banner"), "u2")
	require.NoError(t, err)
	_, err = r.Reconcile(ctx, "2", types.MediaKindLogo, "u3")
	require.NoError(t, err)

	assert.Equal(t, 1, reg.MediaCount("1", types.MediaKindLogo))
	assert.Equal(t, 1, reg.MediaCount("1", types.MediaKind("banner")))
	assert.Equal(t, 1, reg.MediaCount("2", types.MediaKindLogo))
}

func TestReconcileConcurrentSameKey(t *testing.T) {
	reg := memory.New()
	r := New(reg)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Reconcile(ctx, "1", types.MediaKindLogo,
				fmt.Sprintf("https://cdn.example.com/a/logo-%d.png", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, reg.MediaCount("1", types.MediaKindLogo),
		"concurrent reconciliation must never double-insert")
}

// failingStore wraps the memory registry to inject failures.
type failingStore struct {
	*memory.Registry
	findErr   error
	updateErr error
}

func (f *failingStore) FindMediaRecord(ctx context.Context, id types.EntityID, kind types.MediaKind) (*types.MediaRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.Registry.FindMediaRecord(ctx, id, kind)
}

func (f *failingStore) UpdateMediaRecord(ctx context.Context, id, url string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.Registry.UpdateMediaRecord(ctx, id, url)
}

func TestReconcileLookupFailure(t *testing.T) {
	store := &failingStore{Registry: memory.New(), findErr: errors.New("connection reset")}
	r := New(store)

	_, err := r.Reconcile(context.Background(), "1", types.MediaKindLogo, "u")
	assert.ErrorIs(t, err, errors.ErrRegistryFailed)
}

func TestReconcileUpdateFailure(t *testing.T) {
	store := &failingStore{Registry: memory.New()}
	r := New(store)
	ctx := context.Background()

	_, err := r.Reconcile(ctx, "1", types.MediaKindLogo, "u1")
	require.NoError(t, err)

	store.updateErr = errors.New("write refused")
	_, err = r.Reconcile(ctx, "1", types.MediaKindLogo, "u2")
	assert.ErrorIs(t, err, errors.ErrRegistryFailed)

	// The existing record is untouched.
	rec, err := store.Registry.FindMediaRecord(ctx, "1", types.MediaKindLogo)
	require.NoError(t, err)
	assert.Equal(t, "u1", rec.FileURL)
}
