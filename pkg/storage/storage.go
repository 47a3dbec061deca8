// Package storage defines the object store collaborator for durable brand
// assets. Keys are a pure function of (entity, kind, extension), so repeated
// ingestion of the same item overwrites the same object instead of
// accumulating copies.
package storage

import (
	"context"
	"strings"

	"github.com/brandmap/brandmap/pkg/normalize"
	"github.com/brandmap/brandmap/pkg/types"
)

// Store writes assets to durable, publicly addressable locations.
type Store interface {
	// Put writes bytes at key with overwrite semantics and returns the
	// stable public URL for the key. Calling Put twice with the same key
	// replaces the object contents; the URL never changes.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ObjectKey computes the deterministic storage key for an asset: the entity
// name slugged into a safe path segment, then a kind-qualified filename.
// Same entity, kind, and extension always produce the same key.
func ObjectKey(entityName string, kind types.MediaKind, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return normalize.Slug(entityName) + "/" + kind.String() + strings.ToLower(ext)
}
