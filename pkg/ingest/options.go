package ingest

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/brandmap/brandmap/pkg/types"
)

// Defaults for batch execution. The request interval mirrors the deliberate
// pacing required by scraped member sites and the storage API.
const (
	DefaultWorkers     = 4
	DefaultMinInterval = 500 * time.Millisecond

	// DownloadTimeout bounds a single asset download. Logos are small;
	// anything slower than this is a dead source.
	DownloadTimeout = 30 * time.Second
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers sets the number of concurrent workers. Values below 1 are
// treated as 1.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n < 1 {
			n = 1
		}
		p.workers = n
	}
}

// WithMinInterval sets the minimum delay between source fetches across all
// workers. A zero interval disables pacing.
func WithMinInterval(d time.Duration) Option {
	return func(p *Pipeline) {
		if d <= 0 {
			p.limiter = nil
			return
		}
		p.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithKind sets the media kind ingested assets are recorded under.
func WithKind(kind types.MediaKind) Option {
	return func(p *Pipeline) {
		p.kind = kind
	}
}

// WithFetcher replaces the HTTP fetcher used to download candidate assets.
func WithFetcher(f Fetcher) Option {
	return func(p *Pipeline) {
		p.fetcher = f
	}
}
