// Package supabase provides an asset store backed by Supabase Storage.
// Uploads use upsert semantics so re-running ingestion replaces objects at
// their deterministic keys, and buckets are public-read so object URLs are
// durable and shareable.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brandmap/brandmap/internal/transport"
	"github.com/brandmap/brandmap/pkg/errors"
)

// Store uploads objects to a single Supabase Storage bucket.
type Store struct {
	baseURL string
	bucket  string
	client  *transport.Client
}

// New creates a store for the given project URL, bucket, and service-role
// key.
func New(projectURL, bucket, serviceKey string) *Store {
	return &Store{
		baseURL: strings.TrimSuffix(projectURL, "/"),
		bucket:  bucket,
		client:  transport.New(&transport.ServiceKeyAuth{Key: serviceKey}),
	}
}

// Put uploads data at key with upsert semantics and returns the public URL.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(data)))
	if err != nil {
		return "", errors.NewStorageError(s.bucket, key, err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	// Replace the object if it already exists at this key.
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.NewStorageError(s.bucket, key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errors.NewStorageError(s.bucket, key,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the stable public URL for a key. The URL depends only on
// the project, bucket, and key, never on how many times the object was
// written.
func (s *Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key)
}

// EnsureBucket creates the store's bucket as public-read if it does not
// already exist.
func (s *Store) EnsureBucket(ctx context.Context) error {
	payload, err := json.Marshal(map[string]any{
		"id":     s.bucket,
		"name":   s.bucket,
		"public": true,
	})
	if err != nil {
		return errors.NewStorageError(s.bucket, "", err)
	}

	resp, err := s.client.PostJSON(ctx, s.baseURL+"/storage/v1/bucket", payload)
	if err != nil {
		return errors.NewStorageError(s.bucket, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return nil
	case resp.StatusCode == http.StatusConflict:
		// Bucket already exists.
		return nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.NewStorageError(s.bucket, "",
			fmt.Errorf("create bucket: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
}
