// Package extract converts raw listing-tile markup into normalized
// JobRecords. Every field resolves through a layered strategy: a structured
// selector lookup first, a regex scan over the tile's flattened text second,
// and a named default last. Extraction is best-effort and never fails on
// absent markup.
package extract

// Marketplace markup ships several generations of class names and
// data-test hooks at once; each selector lists the known variants.
const (
	selJobTile     = `section.job-tile, article.job-tile, [data-test="job-tile-list"] > section, [data-test="job-tile"]`
	selTitle       = `h2.job-tile-title a, h3.job-tile-title a, .up-n-link, [data-test="job-tile-title-link"]`
	selDescription = `.job-tile-description, [data-test="job-description"], .up-line-clamp-v3`
	selJobType     = `[data-test="job-type"], .job-tile-info-list li:first-child`
	selLocation    = `[data-test="client-country"], .job-tile-location`
	selPayment     = `[data-test="payment-verified"], .payment-verified, .up-icon-verified-check`
	selSpend       = `[data-test="client-spend"], .client-spend, span[data-test="total-spent"]`
	selHireRate    = `[data-test="client-hire-rate"], .client-hire-rate`
	selSkills      = `.up-skill-badge, [data-test="skill"], [data-test="token"], .job-tile-skill, .air3-token`
	selProposals   = `[data-test="proposals-tier"], .up-job-tile-proposals, [data-test="proposal-count"], .up-description-item li:nth-child(1)`

	selProfileName   = `[data-test="freelancer-name"], h1.m-0, h2.up-card-title, h1, .up-card-header h2`
	selProfileRate   = `[data-test="hourly-rate"] strong, .up-hourly-rate, .air3-display-inline-block strong, [data-test="rate"]`
	selProfileSkills = `[data-test="skill"], .up-skill-badge, .air3-token, .job-tile-skill`
	selProfileTitle  = `[data-test="title"], h2.up-card-title, .up-line-clamp-v2, h1`
)
