package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/match-intel/internal/types"
)

const hourlyTile = `
<section class="job-tile">
  <h2 class="job-tile-title"><a href="/jobs/build-go-service_~021abc99de/">Build Go Service</a></h2>
  <div class="job-tile-description">We need a Go backend engineer for our payments API.</div>
  <ul class="job-tile-info-list"><li>Hourly: $40-$60</li><li>Intermediate</li></ul>
  <span data-test="client-country">United States</span>
  <span data-test="payment-verified"></span>
  <span data-test="client-spend">$20k</span>
  <span data-test="client-hire-rate">62%</span>
  <span data-test="skill">Go</span>
  <span data-test="skill">PostgreSQL</span>
  <span data-test="proposals-tier">Proposals: Less than 5</span>
</section>`

const fixedTile = `
<section class="job-tile">
  <h3 class="job-tile-title"><a href="/jobs/logo-design_~14beef00/">Logo Design</a></h3>
  <div class="up-line-clamp-v3">Design a logo for our bakery.</div>
  <ul class="job-tile-info-list"><li>Fixed-price - Est. Budget: $1,500</li></ul>
</section>`

func TestListing_HourlyTile(t *testing.T) {
	rec, err := Listing(hourlyTile)
	require.NoError(t, err)

	assert.Equal(t, "Build Go Service", rec.Title)
	assert.Equal(t, "/jobs/build-go-service_~021abc99de/", rec.Link)
	assert.Equal(t, "We need a Go backend engineer for our payments API.", rec.Description)
	assert.Equal(t, types.EngagementHourly, rec.Type)
	assert.Equal(t, 40, rec.RateMin)
	assert.Equal(t, 60, rec.RateMax)
	assert.Zero(t, rec.Budget)
	assert.Equal(t, "United States", rec.Location)
	assert.True(t, rec.PaymentVerified)
	assert.Equal(t, "$20k", rec.ClientSpend)
	assert.Equal(t, 62, rec.HireRate)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, rec.Skills)
	assert.Equal(t, "Less than 5", rec.Proposals)
}

func TestListing_FixedPriceTile(t *testing.T) {
	rec, err := Listing(fixedTile)
	require.NoError(t, err)

	assert.Equal(t, "Logo Design", rec.Title)
	assert.Equal(t, types.EngagementFixed, rec.Type)
	assert.Equal(t, 1500, rec.Budget, "thousands separator is stripped")
	assert.Zero(t, rec.RateMin)
	assert.Zero(t, rec.RateMax)
	assert.False(t, rec.PaymentVerified)
	assert.Equal(t, types.DefaultSpend, rec.ClientSpend)
	assert.Equal(t, types.DefaultLocation, rec.Location)
}

func TestListing_EmptyTileResolvesDefaults(t *testing.T) {
	rec, err := Listing(`<section class="job-tile"></section>`)
	require.NoError(t, err)

	assert.Equal(t, types.DefaultTitle, rec.Title)
	assert.Empty(t, rec.Link)
	assert.Equal(t, types.DefaultLocation, rec.Location)
	assert.Equal(t, types.DefaultProposals, rec.Proposals)
	assert.Equal(t, types.DefaultSpend, rec.ClientSpend)
	assert.Equal(t, types.EngagementUnknown, rec.Type)
	assert.Zero(t, rec.HireRate)
	assert.Empty(t, rec.Skills)
	assert.False(t, rec.PaymentVerified)
}

func TestListing_TextFallbacks(t *testing.T) {
	// No structured stat elements; everything resolves through the
	// flattened-text regex layer.
	tile := `
<section class="job-tile">
  <div>Client history: $5k+ total spent, 45% hire rate. Payment verified.</div>
  <div>Proposals: 8</div>
</section>`

	rec, err := Listing(tile)
	require.NoError(t, err)

	assert.Equal(t, "$5k+", rec.ClientSpend)
	assert.Equal(t, 45, rec.HireRate)
	assert.True(t, rec.PaymentVerified)
	assert.Equal(t, "8", rec.Proposals)
}

func TestListing_HourlySingleRate(t *testing.T) {
	tile := `<section class="job-tile"><ul class="job-tile-info-list"><li>Hourly: $35</li></ul></section>`

	rec, err := Listing(tile)
	require.NoError(t, err)

	assert.Equal(t, types.EngagementHourly, rec.Type)
	assert.Equal(t, 35, rec.RateMin)
	assert.Equal(t, 35, rec.RateMax, "single figure fills both ends of the band")
}

func TestEngagement(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantType types.EngagementType
		budget   int
		rateMin  int
		rateMax  int
	}{
		{"hourly band", "Hourly: $25-$45", types.EngagementHourly, 0, 25, 45},
		{"hourly no figures", "Hourly", types.EngagementHourly, 0, 0, 0},
		{"fixed with label", "Fixed-price - Est. Budget: $800", types.EngagementFixed, 800, 0, 0},
		{"budget keyword only", "Budget $2,400", types.EngagementFixed, 2400, 0, 0},
		{"unknown", "Part time contract", types.EngagementUnknown, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, budget, rateMin, rateMax := engagement(tt.text)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.budget, budget)
			assert.Equal(t, tt.rateMin, rateMin)
			assert.Equal(t, tt.rateMax, rateMax)
		})
	}
}
