package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedPage(links ...string) string {
	page := `<div data-test="job-tile-list">`
	for i, link := range links {
		page += fmt.Sprintf(
			`<section><h2 class="job-tile-title"><a href=%q>Job %d</a></h2></section>`,
			link, i+1)
	}
	return page + `</div>`
}

func TestScanFeed_ExtractsAllTiles(t *testing.T) {
	records, err := ScanFeed(feedPage("/jobs/~a1", "/jobs/~b2", "/jobs/~c3"), map[string]bool{})
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "Job 1", records[0].Title)
	assert.Equal(t, "/jobs/~a1", records[0].Link)
	assert.Equal(t, "/jobs/~c3", records[2].Link)
}

func TestScanFeed_SkipsProcessedLinks(t *testing.T) {
	processed := map[string]bool{"/jobs/~b2": true}

	records, err := ScanFeed(feedPage("/jobs/~a1", "/jobs/~b2", "/jobs/~c3"), processed)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "/jobs/~a1", records[0].Link)
	assert.Equal(t, "/jobs/~c3", records[1].Link)
}

func TestScanFeed_RecordsNewLinks(t *testing.T) {
	processed := map[string]bool{}

	_, err := ScanFeed(feedPage("/jobs/~a1", "/jobs/~b2"), processed)
	require.NoError(t, err)
	assert.True(t, processed["/jobs/~a1"])
	assert.True(t, processed["/jobs/~b2"])

	// A repeat scan of the same page yields nothing new.
	again, err := ScanFeed(feedPage("/jobs/~a1", "/jobs/~b2"), processed)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestScanFeed_DuplicateTilesInOnePage(t *testing.T) {
	records, err := ScanFeed(feedPage("/jobs/~a1", "/jobs/~a1"), map[string]bool{})
	require.NoError(t, err)
	assert.Len(t, records, 1, "the second occurrence is already processed")
}

func TestScanFeed_EmptyPage(t *testing.T) {
	records, err := ScanFeed(`<html><body><p>No jobs found.</p></body></html>`, map[string]bool{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestScanFeed_NilProcessedSet(t *testing.T) {
	records, err := ScanFeed(feedPage("/jobs/~a1"), nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
