package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandmap/brandmap/internal/transport"
	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/registry/memory"
	"github.com/brandmap/brandmap/pkg/storage/fs"
	"github.com/brandmap/brandmap/pkg/types"
)

func assetServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accenture.png", "/unknown.png", "/aws.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testRegistry() *memory.Registry {
	return memory.New(
		types.Entity{ID: "1", CanonicalName: "Accenture", Active: true},
		types.Entity{ID: "2", CanonicalName: "Wipro", Active: true},
		types.Entity{ID: "3", CanonicalName: "AWS Philippines Inc", Active: true},
	)
}

func newTestPipeline(reg *memory.Registry, dir string, opts ...Option) *Pipeline {
	base := []Option{WithWorkers(2), WithMinInterval(0)}
	return New(reg, fs.New(dir), append(base, opts...)...)
}

func TestIngestBatchResilience(t *testing.T) {
	srv := assetServer(t)
	reg := testRegistry()
	p := newTestPipeline(reg, t.TempDir())

	items := []Item{
		{Label: "Accenture", SourceURL: srv.URL + "/accenture.png"},
		{Label: "Unknown Co", SourceURL: srv.URL + "/unknown.png"},
		{Label: "Wipro", SourceURL: srv.URL + "/nope.png"},
	}

	report, err := p.Ingest(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	require.Equal(t, 1, report.Failed())

	failure := report.Failures()[0]
	assert.Equal(t, "Wipro", failure.Label)
	assert.ErrorIs(t, failure.Err, errors.ErrFetchFailed)

	// Re-running the identical batch produces the same outcome and no
	// duplicate records.
	again, err := p.Ingest(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, report.Processed, again.Processed)
	assert.Equal(t, report.Skipped, again.Skipped)
	assert.Equal(t, report.Failed(), again.Failed())
	assert.Equal(t, 1, reg.MediaCount("1", types.MediaKindLogo))
}

func TestIngestShortLabelSkipped(t *testing.T) {
	srv := assetServer(t)
	p := newTestPipeline(testRegistry(), t.TempDir())

	report, err := p.Ingest(context.Background(), []Item{
		{Label: "", SourceURL: srv.URL + "/accenture.png"},
		{Label: "ab", SourceURL: srv.URL + "/accenture.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 2, report.Skipped)
}

func TestIngestPartialMatchProcessed(t *testing.T) {
	srv := assetServer(t)
	reg := testRegistry()
	p := newTestPipeline(reg, t.TempDir())

	report, err := p.Ingest(context.Background(), []Item{
		{Label: "AWS", SourceURL: srv.URL + "/aws.png"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Processed)
	assert.Equal(t, types.TierPartialCanonical, report.Outcomes[0].Tier)
	assert.Equal(t, types.EntityID("3"), report.Outcomes[0].Entity)
}

func TestIngestRegistryDownFailsBatch(t *testing.T) {
	p := newTestPipeline(testRegistry(), t.TempDir())
	p.registry = &downRegistry{}

	_, err := p.Ingest(context.Background(), []Item{{Label: "Accenture", SourceURL: "http://x"}})
	assert.ErrorIs(t, err, errors.ErrRegistryFailed)
}

func TestIngestReportDeterministicOrder(t *testing.T) {
	srv := assetServer(t)
	p := newTestPipeline(testRegistry(), t.TempDir(), WithWorkers(4))

	items := []Item{
		{Label: "Wipro", SourceURL: srv.URL + "/missing.png"},
		{Label: "Unknown Co", SourceURL: srv.URL + "/unknown.png"},
		{Label: "Accenture", SourceURL: srv.URL + "/accenture.png"},
	}

	report, err := p.Ingest(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 3)
	for i, want := range []string{"Wipro", "Unknown Co", "Accenture"} {
		assert.Equal(t, want, report.Outcomes[i].Label)
		assert.Equal(t, i, report.Outcomes[i].Index)
	}
}

func TestIngestCancellation(t *testing.T) {
	var served atomic.Int32
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		served.Add(1)
		time.Sleep(50 * time.Millisecond)
		_, _ = w.Write([]byte("png"))
	}))
	defer slow.Close()

	p := newTestPipeline(testRegistry(), t.TempDir(), WithWorkers(1))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	var items []Item
	for range 50 {
		items = append(items, Item{Label: "Accenture", SourceURL: slow.URL + "/a.png"})
	}

	report, err := p.Ingest(ctx, items)
	require.NoError(t, err)

	// Cancellation stopped scheduling; most items never ran but the
	// report is still valid for the ones that completed.
	assert.Less(t, len(report.Outcomes), len(items))
	assert.LessOrEqual(t, int(served.Load()), len(items))
}

func TestIngestDeadlineMatchesCancel(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte("png"))
	}))
	defer slow.Close()

	items := []Item{{Label: "Accenture", SourceURL: slow.URL + "/a.png"}}

	// An in-flight item aborted by a deadline is excluded from the report,
	// exactly like one aborted by an explicit cancel.
	deadlineCtx, cancelDeadline := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelDeadline()
	p := newTestPipeline(testRegistry(), t.TempDir(), WithWorkers(1))
	report, err := p.Ingest(deadlineCtx, items)
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Zero(t, report.Failed())

	cancelCtx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	p = newTestPipeline(testRegistry(), t.TempDir(), WithWorkers(1))
	report, err = p.Ingest(cancelCtx, items)
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Zero(t, report.Failed())
}

func TestIngestSlowSourceReportedFailed(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte("png"))
	}))
	defer slow.Close()

	// A per-request download timeout with a live batch context is an
	// ordinary item failure, not a batch abort.
	p := newTestPipeline(testRegistry(), t.TempDir(), WithWorkers(1),
		WithFetcher(transport.New(nil).WithTimeout(10*time.Millisecond)))

	report, err := p.Ingest(context.Background(), []Item{
		{Label: "Accenture", SourceURL: slow.URL + "/a.png"},
	})
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, 1, report.Failed())
	assert.ErrorIs(t, report.Failures()[0].Err, errors.ErrFetchFailed)
}

func TestIngestStoredButUnlinked(t *testing.T) {
	srv := assetServer(t)
	reg := testRegistry()
	dir := t.TempDir()

	broken := &mediaDownRegistry{Registry: reg}
	p := New(broken, fs.New(dir), WithWorkers(1), WithMinInterval(0))

	items := []Item{{Label: "Accenture", SourceURL: srv.URL + "/accenture.png"}}

	report, err := p.Ingest(context.Background(), items)
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed())
	failure := report.Failures()[0]
	assert.ErrorIs(t, failure.Err, errors.ErrRegistryFailed)
	assert.NotEmpty(t, failure.URL, "asset was stored before reconciliation failed")

	// Self-heals on the next successful run of the same item.
	broken.healed = true
	report, err = p.Ingest(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, reg.MediaCount("1", types.MediaKindLogo))
}

// downRegistry fails the batch precondition.
type downRegistry struct{}

func (d *downRegistry) ListActiveEntities(context.Context) ([]types.Entity, error) {
	return nil, errors.New("registry unreachable")
}

func (d *downRegistry) FindMediaRecord(context.Context, types.EntityID, types.MediaKind) (*types.MediaRecord, error) {
	return nil, errors.ErrNotFound
}

func (d *downRegistry) CreateMediaRecord(context.Context, *types.MediaRecord) error {
	return nil
}

func (d *downRegistry) UpdateMediaRecord(context.Context, string, string) error {
	return nil
}

// mediaDownRegistry serves entities but fails media writes until healed.
type mediaDownRegistry struct {
	*memory.Registry
	healed bool
}

func (m *mediaDownRegistry) CreateMediaRecord(ctx context.Context, rec *types.MediaRecord) error {
	if !m.healed {
		return errors.New("media table unavailable")
	}
	return m.Registry.CreateMediaRecord(ctx, rec)
}
