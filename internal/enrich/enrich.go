// Package enrich runs the lazy Deep Intel enrichment pass: for each listing
// without fresh cached intel, fetch the detail page (serialized and paced),
// extract a Deep Intel record, and cache it. Extraction stays pure; this
// package owns all the I/O around it.
package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/match-intel/internal/fetch"
	"github.com/jonathan/match-intel/internal/intel"
	"github.com/jonathan/match-intel/internal/types"
)

// IntelCache is the cache surface the enricher needs from the store.
type IntelCache interface {
	SaveIntel(ctx context.Context, jobID string, rec *types.DeepIntel) error
	GetFreshIntel(ctx context.Context, jobID string, ttl time.Duration) (*types.DeepIntel, error)
}

// Enricher fetches and caches Deep Intel for listings.
type Enricher struct {
	cache      IntelCache
	limiter    *fetch.Limiter
	options    *fetch.Options
	useBrowser bool
	log        *zap.Logger
}

// Config holds the enricher's knobs.
type Config struct {
	Cache      IntelCache
	Delay      time.Duration
	Options    *fetch.Options
	UseBrowser bool
	Logger     *zap.Logger
}

// New builds an enricher.
func New(cfg Config) *Enricher {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	opts := cfg.Options
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &Enricher{
		cache:      cfg.Cache,
		limiter:    fetch.NewLimiter(cfg.Delay),
		options:    opts,
		useBrowser: cfg.UseBrowser,
		log:        log,
	}
}

// Intel returns fresh Deep Intel for one listing, from cache when possible,
// fetching and caching otherwise. Returns nil (not an error) when the
// listing has no recognizable id or the page yields nothing: missing
// enrichment means stale-or-default data until the next cycle, never a
// failed scan.
func (e *Enricher) Intel(ctx context.Context, link string) (*types.DeepIntel, error) {
	jobID := types.JobID(link)
	if jobID == "" {
		return nil, nil
	}

	if e.cache != nil {
		cached, err := e.cache.GetFreshIntel(ctx, jobID, types.IntelTTL)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
	}

	html, err := e.fetchDetail(ctx, link)
	if err != nil {
		e.log.Warn("detail fetch failed", zap.String("job_id", jobID), zap.Error(err))
		return nil, nil
	}

	rec := intel.Parse(html)
	if rec == nil {
		return nil, nil
	}

	if e.cache != nil {
		if err := e.cache.SaveIntel(ctx, jobID, rec); err != nil {
			// A cache write failure only costs a refetch next cycle.
			e.log.Warn("intel cache write failed", zap.String("job_id", jobID), zap.Error(err))
		}
	}

	e.log.Debug("deep intel captured",
		zap.String("job_id", jobID),
		zap.String("client", rec.ClientName),
		zap.Int("hire_rate", rec.HireRate))
	return rec, nil
}

// EnrichAll merges fresh intel onto each record in place, fetching where
// the cache is cold. Serialized by the limiter.
func (e *Enricher) EnrichAll(ctx context.Context, records []*types.JobRecord) error {
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		deep, err := e.Intel(ctx, rec.Link)
		if err != nil {
			return err
		}
		deep.ApplyTo(rec)
	}
	return nil
}

func (e *Enricher) fetchDetail(ctx context.Context, link string) (string, error) {
	if err := e.limiter.Acquire(ctx); err != nil {
		return "", err
	}
	defer e.limiter.Release()

	result, err := fetch.URL(ctx, link, e.options)
	if err != nil {
		return "", err
	}

	if e.useBrowser && fetch.ShouldUseBrowser(result.HTML) {
		return fetch.WithBrowser(ctx, link, e.options.Timeout, e.log)
	}
	return result.HTML, nil
}
