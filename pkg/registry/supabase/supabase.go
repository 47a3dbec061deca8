// Package supabase implements the entity registry over the Supabase REST
// (PostgREST) API. The hosted registry owns the entity and media tables; this
// client only reads entities and reads/writes media records.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/brandmap/brandmap/internal/transport"
	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/types"
)

// Default table names, matching the deployed registry schema.
const (
	DefaultEntityTable = "bpos"
	DefaultMediaTable  = "bpo_media"
)

// Registry is a PostgREST-backed registry client.
type Registry struct {
	baseURL     string
	entityTable string
	mediaTable  string
	client      *transport.Client
}

// Option configures a Registry.
type Option func(*Registry)

// WithTables overrides the entity and media table names.
func WithTables(entityTable, mediaTable string) Option {
	return func(r *Registry) {
		r.entityTable = entityTable
		r.mediaTable = mediaTable
	}
}

// New creates a registry client for the given project URL and service-role
// key.
func New(projectURL, serviceKey string, opts ...Option) *Registry {
	r := &Registry{
		baseURL:     strings.TrimSuffix(projectURL, "/"),
		entityTable: DefaultEntityTable,
		mediaTable:  DefaultMediaTable,
		client:      transport.New(&transport.ServiceKeyAuth{Key: serviceKey}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListActiveEntities returns all active entities in table order.
func (r *Registry) ListActiveEntities(ctx context.Context) ([]types.Entity, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?select=id,company_name,trade_name,website,is_active&is_active=eq.true&order=id",
		r.baseURL, r.entityTable)

	var entities []types.Entity
	if err := r.getJSON(ctx, endpoint, &entities); err != nil {
		return nil, errors.WrapRegistry("list", "entity", "", err)
	}
	return entities, nil
}

// FindMediaRecord returns the current media record for (entityID, kind), or
// errors.ErrNotFound when none exists.
func (r *Registry) FindMediaRecord(ctx context.Context, entityID types.EntityID, kind types.MediaKind) (*types.MediaRecord, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?bpo_id=eq.%s&media_type=eq.%s&limit=1",
		r.baseURL, r.mediaTable, url.QueryEscape(entityID.String()), url.QueryEscape(kind.String()))

	var records []types.MediaRecord
	if err := r.getJSON(ctx, endpoint, &records); err != nil {
		return nil, errors.WrapRegistry("find", "media", entityID.String(), err)
	}
	if len(records) == 0 {
		return nil, errors.ErrNotFound
	}
	return &records[0], nil
}

// CreateMediaRecord inserts a new media record.
func (r *Registry) CreateMediaRecord(ctx context.Context, rec *types.MediaRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return errors.WrapRegistry("insert", "media", rec.EntityID.String(), err)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s", r.baseURL, r.mediaTable)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return errors.WrapRegistry("insert", "media", rec.EntityID.String(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	var created []types.MediaRecord
	if err := r.doJSON(req, &created); err != nil {
		return errors.WrapRegistry("insert", "media", rec.EntityID.String(), err)
	}
	if len(created) > 0 {
		rec.ID = created[0].ID
	}
	return nil
}

// UpdateMediaRecord replaces the file URL of an existing record and forces it
// primary.
func (r *Registry) UpdateMediaRecord(ctx context.Context, id string, fileURL string) error {
	payload, err := json.Marshal(map[string]any{
		"file_url":   fileURL,
		"is_primary": true,
	})
	if err != nil {
		return errors.WrapRegistry("update", "media", id, err)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?id=eq.%s", r.baseURL, r.mediaTable, url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return errors.WrapRegistry("update", "media", id, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := r.doJSON(req, nil); err != nil {
		return errors.WrapRegistry("update", "media", id, err)
	}
	return nil
}

// getJSON performs a GET and decodes the response body into out.
func (r *Registry) getJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := r.client.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// doJSON performs a prepared request and decodes the response body into out
// when out is non-nil.
func (r *Registry) doJSON(req *http.Request, out any) error {
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// decode drains a response, mapping non-2xx statuses to errors.
func decode(resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
