package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	ctx := context.Background()

	url1, err := s.Put(ctx, "accenture/logo.png", []byte("v1"), "image/png")
	require.NoError(t, err)

	url2, err := s.Put(ctx, "accenture/logo.png", []byte("v2"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, url1, url2, "same key must yield same URL")

	data, err := os.ReadFile(filepath.Join(dir, "accenture", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data), "second write must overwrite")

	entries, err := os.ReadDir(filepath.Join(dir, "accenture"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "overwrite must not accumulate objects")
}

func TestPublicURLWithBase(t *testing.T) {
	s := New(t.TempDir(), WithBaseURL("https://cdn.example.com/assets/"))

	url, err := s.Put(context.Background(), "wipro/logo.jpg", []byte("x"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/assets/wipro/logo.jpg", url)
}
