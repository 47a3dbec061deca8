package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/types"
)

func TestListActiveEntities(t *testing.T) {
	r := New(
		types.Entity{ID: "1", CanonicalName: "Accenture", Active: true},
		types.Entity{ID: "2", CanonicalName: "Ghost Corp", Active: false},
		types.Entity{ID: "3", CanonicalName: "Wipro", Active: true},
	)

	active, err := r.ListActiveEntities(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, types.EntityID("1"), active[0].ID)
	assert.Equal(t, types.EntityID("3"), active[1].ID)
}

func TestMediaRecordLifecycle(t *testing.T) {
	r := New()
	ctx := context.Background()

	_, err := r.FindMediaRecord(ctx, "1", types.MediaKindLogo)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	rec := &types.MediaRecord{
		EntityID:     "1",
		Kind:         types.MediaKindLogo,
		FileURL:      "https://cdn.example.com/accenture/logo.png",
		IsPrimary:    true,
		DisplayOrder: 1,
	}
	require.NoError(t, r.CreateMediaRecord(ctx, rec))
	require.NotEmpty(t, rec.ID)

	found, err := r.FindMediaRecord(ctx, "1", types.MediaKindLogo)
	require.NoError(t, err)
	assert.Equal(t, rec.FileURL, found.FileURL)

	require.NoError(t, r.UpdateMediaRecord(ctx, rec.ID, "https://cdn.example.com/accenture/logo2.png"))
	found, err = r.FindMediaRecord(ctx, "1", types.MediaKindLogo)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/accenture/logo2.png", found.FileURL)
	assert.True(t, found.IsPrimary)

	assert.Equal(t, 1, r.MediaCount("1", types.MediaKindLogo))
}

func TestUpdateMissingRecord(t *testing.T) {
	r := New()
	err := r.UpdateMediaRecord(context.Background(), "nope", "url")
	assert.ErrorIs(t, err, errors.ErrRegistryFailed)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSeedEntities(t *testing.T) {
	r := New(types.Entity{ID: "1", CanonicalName: "Accenture", Active: true})

	inserted, err := r.SeedEntities(context.Background(), []types.Entity{
		{CanonicalName: "ACCENTURE", Active: true},  // duplicate after folding
		{CanonicalName: "Wipro", Active: true},      // new
		{CanonicalName: "", Active: true},           // unnamed, skipped
		{ID: "fixed", CanonicalName: "EXL", Active: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	active, err := r.ListActiveEntities(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 3)
	for _, e := range active {
		assert.NotEmpty(t, e.ID)
	}
}
