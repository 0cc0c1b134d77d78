package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/match-intel/internal/types"
)

// memCache is an in-memory IntelCache for tests.
type memCache struct {
	mu    sync.Mutex
	items map[string]*types.DeepIntel
	saves int
}

func newMemCache() *memCache {
	return &memCache{items: make(map[string]*types.DeepIntel)}
}

func (c *memCache) SaveIntel(_ context.Context, jobID string, rec *types.DeepIntel) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves++
	c.items[jobID] = rec
	return nil
}

func (c *memCache) GetFreshIntel(_ context.Context, jobID string, _ time.Duration) (*types.DeepIntel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.items[jobID]
	if !ok || !rec.Fresh(time.Now()) {
		return nil, nil
	}
	return rec, nil
}

const detailPage = `
<div class="up-review-content"><p>Working with Sarah was great.</p></div>
<li data-test="about-client-stat">Hire rate: 62%</li>
<span data-test="payment-verified"></span>`

func detailServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(detailPage))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestIntel_FetchesParsesAndCaches(t *testing.T) {
	server, hits := detailServer(t)
	cache := newMemCache()
	e := New(Config{Cache: cache})

	link := server.URL + "/jobs/~021abc99de"
	rec, err := e.Intel(context.Background(), link)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Sarah", rec.ClientName)
	assert.Equal(t, 62, rec.HireRate)
	assert.True(t, rec.PaymentVerified)
	assert.Equal(t, 1, cache.saves)

	// Second lookup is served from cache; no second fetch.
	again, err := e.Intel(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, rec, again)
	assert.Equal(t, 1, *hits)
}

func TestIntel_LinkWithoutIDSkipsFetch(t *testing.T) {
	server, hits := detailServer(t)
	e := New(Config{Cache: newMemCache()})

	rec, err := e.Intel(context.Background(), server.URL+"/jobs/no-id-here")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Zero(t, *hits)
}

func TestIntel_FetchFailureIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	e := New(Config{Cache: newMemCache()})
	rec, err := e.Intel(context.Background(), server.URL+"/jobs/~021dead99")

	assert.NoError(t, err, "a failed fetch means no enrichment, not a failed scan")
	assert.Nil(t, rec)
}

func TestIntel_WorksWithoutCache(t *testing.T) {
	server, hits := detailServer(t)
	e := New(Config{})

	link := server.URL + "/jobs/~021abc99de"
	rec, err := e.Intel(context.Background(), link)
	require.NoError(t, err)
	require.NotNil(t, rec)

	_, err = e.Intel(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, 2, *hits, "no cache means every lookup refetches")
}

func TestEnrichAll_MergesOntoRecords(t *testing.T) {
	server, _ := detailServer(t)
	e := New(Config{Cache: newMemCache()})

	records := []*types.JobRecord{
		{Link: server.URL + "/jobs/~021abc99de", Location: types.DefaultLocation},
		{Link: server.URL + "/jobs/no-id", Location: types.DefaultLocation},
	}

	require.NoError(t, e.EnrichAll(context.Background(), records))

	assert.Equal(t, "Sarah", records[0].ClientName)
	assert.True(t, records[0].ClientMentioned)
	assert.Equal(t, 62, records[0].HireRate)

	// The unidentifiable record is left untouched.
	assert.Empty(t, records[1].ClientName)
}

func TestEnrichAll_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(Config{})
	err := e.EnrichAll(ctx, []*types.JobRecord{{Link: "/jobs/~021abc99de"}})
	assert.ErrorIs(t, err, context.Canceled)
}
