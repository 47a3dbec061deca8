// Package ingest drives the per-item asset pipeline: download a scraped
// candidate, resolve its label to a registry entity, store the bytes at the
// entity's deterministic key, and reconcile the entity's current media
// record. Items are independent; a batch never aborts because one item
// failed, and re-running a batch is always safe because storage and
// reconciliation are both idempotent.
package ingest

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/brandmap/brandmap/internal/transport"
	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/logging"
	"github.com/brandmap/brandmap/pkg/reconcile"
	"github.com/brandmap/brandmap/pkg/registry"
	"github.com/brandmap/brandmap/pkg/resolve"
	"github.com/brandmap/brandmap/pkg/storage"
	"github.com/brandmap/brandmap/pkg/types"
)

// Item is one batch input record: a scraped free-text label and the URL of
// the candidate asset found under it. Notes pass through to the report
// unchanged for audit.
type Item struct {
	Label     string `json:"label"`
	SourceURL string `json:"asset_source_url"`
	Notes     string `json:"notes,omitempty"`
}

// Fetcher downloads candidate asset bytes. *transport.Client implements it.
type Fetcher interface {
	Download(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// Pipeline ingests batches of scraped assets against a registry and an
// object store.
type Pipeline struct {
	registry   registry.Registry
	store      storage.Store
	reconciler *reconcile.Reconciler
	fetcher    Fetcher

	kind    types.MediaKind
	workers int
	limiter *rate.Limiter
}

// New creates an ingestion pipeline over the given registry and store.
func New(reg registry.Registry, store storage.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:   reg,
		store:      store,
		reconciler: reconcile.New(reg),
		fetcher:    transport.New(nil).WithTimeout(DownloadTimeout),
		kind:       types.MediaKindLogo,
		workers:    DefaultWorkers,
		limiter:    rate.NewLimiter(rate.Every(DefaultMinInterval), 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ingest processes every item and returns the aggregate report. The only
// fatal condition is the batch-level precondition: if the entity registry
// cannot be listed, the batch fails before any item runs. Cancellation stops
// scheduling new items; in-flight items finish or abort, and the report
// covers everything that completed.
func (p *Pipeline) Ingest(ctx context.Context, items []Item) (*types.Report, error) {
	entities, err := p.registry.ListActiveEntities(ctx)
	if err != nil {
		return nil, errors.WrapRegistry("list", "entity", "", err)
	}
	resolver := resolve.New(entities)

	logging.Ctx(ctx).Info().
		Int("items", len(items)).
		Int("entities", resolver.Len()).
		Int("workers", p.workers).
		Msg("starting ingestion batch")

	type job struct {
		index int
		item  Item
	}

	jobs := make(chan job)
	outcomes := make([]*types.ItemOutcome, len(items))

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				o := p.processItem(ctx, resolver, j.item)
				o.Index = j.index
				// An item aborted because the batch context fired
				// (cancel or deadline) is not a completed item. A
				// per-request timeout with a live batch context is an
				// ordinary failure.
				if ctx.Err() != nil && errors.IsCanceled(o.Err) {
					continue
				}
				outcomes[j.index] = &o
			}
		}()
	}

schedule:
	for i, item := range items {
		select {
		case <-ctx.Done():
			logging.Ctx(ctx).Warn().
				Int("remaining", len(items)-i).
				Msg("batch canceled, not scheduling remaining items")
			break schedule
		case jobs <- job{index: i, item: item}:
		}
	}
	close(jobs)
	wg.Wait()

	// Fold outcomes in input order so report content is deterministic
	// regardless of completion order.
	report := &types.Report{}
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		report.Outcomes = append(report.Outcomes, *o)
		switch o.Status {
		case types.ItemProcessed:
			report.Processed++
		case types.ItemSkipped:
			report.Skipped++
		}
	}

	logging.Ctx(ctx).Info().
		Int("processed", report.Processed).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed()).
		Msg("ingestion batch complete")

	return report, nil
}

// processItem runs the full pipeline for one item. All errors are captured in
// the returned outcome; nothing escapes to abort the batch.
func (p *Pipeline) processItem(ctx context.Context, resolver *resolve.Resolver, item Item) types.ItemOutcome {
	ctx = logging.WithLabel(ctx, item.Label)
	log := logging.Ctx(ctx)

	if !resolve.Resolvable(item.Label) {
		log.Debug().Msg("skipping item with empty or short label")
		return types.ItemOutcome{
			Label:  item.Label,
			Status: types.ItemSkipped,
			Reason: "label too short to resolve",
		}
	}

	match, warn := resolver.Resolve(item.Label)
	if warn != nil {
		log.Warn().
			Strs("candidates", warn.Candidates).
			Msg("ambiguous match, using first candidate")
	}
	if !match.Resolved() {
		log.Info().Msg("no matching entity, skipping for manual follow-up")
		return types.ItemOutcome{
			Label:  item.Label,
			Status: types.ItemSkipped,
			Reason: "no matching entity",
			Err:    errors.ErrUnresolved,
		}
	}

	entity := match.Entity
	ctx = logging.WithEntity(ctx, entity.ID.String())
	log = logging.Ctx(ctx)
	if match.Tier.Partial() {
		log.Warn().
			Str("matched", entity.CanonicalName).
			Str("tier", match.Tier.String()).
			Msg("low-confidence partial match")
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return types.ItemOutcome{Label: item.Label, Status: types.ItemFailed, Err: err}
		}
	}

	data, contentType, err := p.fetcher.Download(ctx, item.SourceURL)
	if err != nil {
		log.Warn().Err(err).Str("url", item.SourceURL).Msg("failed to fetch asset")
		return types.ItemOutcome{
			Label:  item.Label,
			Tier:   match.Tier,
			Entity: entity.ID,
			Status: types.ItemFailed,
			Reason: "fetch failed: " + err.Error(),
			Err:    err,
		}
	}

	ext := types.ExtFromURL(item.SourceURL)
	if contentType == "" {
		contentType = types.ContentTypeForExt(ext)
	}
	key := storage.ObjectKey(entity.CanonicalName, p.kind, ext)

	url, err := p.store.Put(ctx, key, data, contentType)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("object store rejected write")
		return types.ItemOutcome{
			Label:  item.Label,
			Tier:   match.Tier,
			Entity: entity.ID,
			Status: types.ItemFailed,
			Reason: "storage failed: " + err.Error(),
			Err:    err,
		}
	}

	outcome, err := p.reconciler.Reconcile(ctx, entity.ID, p.kind, url)
	if err != nil {
		// The asset is stored but unlinked. Recoverable: the next
		// successful run of the same item heals it.
		log.Error().Err(err).Str("url", url).Msg("failed to reconcile media record")
		return types.ItemOutcome{
			Label:  item.Label,
			Tier:   match.Tier,
			Entity: entity.ID,
			URL:    url,
			Status: types.ItemFailed,
			Reason: "reconciliation failed: " + err.Error(),
			Err:    err,
		}
	}

	log.Info().
		Str("key", key).
		Str("outcome", outcome.String()).
		Str("tier", match.Tier.String()).
		Msg("ingested asset")

	return types.ItemOutcome{
		Label:  item.Label,
		Tier:   match.Tier,
		Entity: entity.ID,
		URL:    url,
		Status: types.ItemProcessed,
	}
}
