package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/match-intel/internal/types"
)

// ScanFeed extracts every listing tile from a feed page in document order.
// The processed set carries the listing links already handled this cycle:
// tiles whose link is present are skipped, and newly extracted links are
// added. Passing the set explicitly keeps repeat scans idempotent without
// any ambient per-element state.
func ScanFeed(feedHTML string, processed map[string]bool) ([]*types.JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(feedHTML))
	if err != nil {
		return nil, &ListingError{Message: "failed to parse feed markup", Cause: err}
	}

	var records []*types.JobRecord
	doc.Find(selJobTile).Each(func(_ int, tile *goquery.Selection) {
		rec := fromTile(tile)
		if rec.Link != "" && processed[rec.Link] {
			return
		}
		records = append(records, rec)
		if rec.Link != "" && processed != nil {
			processed[rec.Link] = true
		}
	})

	return records, nil
}
