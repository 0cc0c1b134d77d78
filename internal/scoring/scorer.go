// Package scoring computes the deterministic fit score and advisory for a
// JobRecord against the user's preferences. Scoring is pure: no I/O, no
// hidden state, and identical inputs always produce identical results.
package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/match-intel/internal/types"
)

// Additive point system: every rule is evaluated independently and summed
// starting from the base, then clamped once at the end.
const (
	baseScore = 35

	paymentVerifiedBonus     = 10
	paymentUnverifiedPenalty = 20

	keywordMatchCap  = 40.0
	keywordPoolLimit = 10

	missingMandatoryPenalty = 15

	hourlyBandBonus     = 15
	hourlyUnderPenalty  = 15
	hourlyFloorBonus    = 10
	fixedBudgetBonus    = 15
	fixedDeepUnderRatio = 0.4
	fixedUnderPenalty   = 10

	establishedSpendBonus = 7
	highHireRateBonus     = 8
	highHireRateFloor     = 75
	lowHireRateCeiling    = 30
	lowHireRatePenalty    = 10

	locationBonus    = 10
	blacklistPenalty = 30

	saturatedPenalty = 25
	crowdedPenalty   = 10

	priorEngagementBonus = 20

	recencyFreshBonus  = 15
	recencyRecentBonus = 10
	recencyRecentHours = 6
	recencyStale       = -10

	ghostInviteFloor = 10
	ghostJobPenalty  = 20

	ratingBonus = 5
	ratingFloor = 4.5

	avgRatePaidBonus = 10
)

var reLeadingNumber = regexp.MustCompile(`\d+`)

// Scorer scores job records against one normalized preference set.
type Scorer struct {
	prefs *types.Preferences
}

// NewScorer builds a scorer over a defensive copy of the preferences.
// Malformed collections are coerced to empty sets so scoring never fails on
// a badly persisted configuration.
func NewScorer(prefs *types.Preferences) *Scorer {
	normalized := types.DefaultPreferences()
	if prefs != nil {
		copied := *prefs
		normalized = &copied
	}
	normalized.Normalize()
	return &Scorer{prefs: normalized}
}

// Preferences returns the normalized preference set the scorer operates on.
func (s *Scorer) Preferences() *types.Preferences {
	return s.prefs
}

// Score applies the additive rule table to one job record. All intermediate
// arithmetic is unclamped; the total is clamped to [0,100] and rounded only
// at the very end.
func (s *Scorer) Score(job *types.JobRecord) *types.ScoreResult {
	if job == nil {
		job = &types.JobRecord{}
	}

	score := float64(baseScore)

	// Payment trust.
	if job.PaymentVerified {
		score += paymentVerifiedBonus
	} else {
		score -= paymentUnverifiedPenalty
	}

	// Skill and keyword overlap, capped.
	matches := s.matchedTerms(job)
	poolSize := math.Min(float64(max(len(s.prefs.Keywords), 1)), keywordPoolLimit)
	ratio := float64(len(matches)) / poolSize
	score += math.Min(ratio*keywordMatchCap, keywordMatchCap)

	// Mandatory skills the preference set cannot cover.
	missing := s.missingMandatory(job)
	score -= float64(len(missing) * missingMandatoryPenalty)

	// Financial alignment.
	score += s.financialDelta(job)

	// Client scale and hire rate.
	spend := strings.ToLower(job.ClientSpend)
	if strings.Contains(spend, "k") || strings.Contains(spend, "m") {
		score += establishedSpendBonus
	}
	if job.HireRate > highHireRateFloor {
		score += highHireRateBonus
	} else if job.HireRate < lowHireRateCeiling && job.HireRate > 0 {
		score -= lowHireRatePenalty
	}

	// Location preference and blacklist.
	locationMatched := anySubstring(s.prefs.Locations, job.Location)
	if locationMatched {
		score += locationBonus
	}
	blacklisted := anySubstring(s.prefs.BlacklistedLocations, job.Location)
	if blacklisted {
		score -= blacklistPenalty
	}

	// Competition.
	switch job.Proposals {
	case types.ProposalsSaturated:
		score -= saturatedPenalty
	case types.ProposalsCrowded:
		score -= crowdedPenalty
	}

	// Prior engagement with this client.
	if job.ClientMentioned {
		score += priorEngagementBonus
	}

	// Recency of client activity.
	recency := recencyDelta(job.LastViewed)
	score += float64(recency)

	// Ghost-job signal: invites going unanswered with nobody interviewed.
	if job.UnansweredInvites > ghostInviteFloor && job.Interviewing == 0 {
		score -= ghostJobPenalty
	}

	// Deep intel boosts.
	if job.AvgRating >= ratingFloor {
		score += ratingBonus
	}
	if job.AvgRatePaid > 0 && job.AvgRatePaid >= float64(s.prefs.HourlyRateMin) {
		score += avgRatePaidBonus
	}

	total := int(math.Round(score))
	if total < 0 {
		total = 0
	} else if total > 100 {
		total = 100
	}

	result := &types.ScoreResult{
		Total:            total,
		Matches:          matches,
		MissingMandatory: missing,
		LocationMatched:  locationMatched,
		Blacklisted:      blacklisted,
		HighCompetition:  job.Proposals == types.ProposalsSaturated,
		ClientMentioned:  job.ClientMentioned,
		PaymentVerified:  job.PaymentVerified,
		RecencyDelta:     recency,
	}
	result.Advice = s.advise(job, result)
	return result
}

// matchedTerms is the ordered union of listing skills that overlap a
// preference keyword (substring in either direction) and preference
// keywords appearing in the title+description text. Deduplicated, first
// occurrence wins, all lower-cased.
func (s *Scorer) matchedTerms(job *types.JobRecord) []string {
	keywords := lowered(s.prefs.Keywords)
	jobText := strings.ToLower(job.Title + " " + job.Description)

	matches := make([]string, 0, len(keywords))
	seen := make(map[string]bool)

	for _, skill := range lowered(job.Skills) {
		if skill == "" || seen[skill] {
			continue
		}
		if overlapsAny(skill, keywords) {
			seen[skill] = true
			matches = append(matches, skill)
		}
	}
	for _, kw := range keywords {
		if kw == "" || seen[kw] {
			continue
		}
		if strings.Contains(jobText, kw) {
			seen[kw] = true
			matches = append(matches, kw)
		}
	}
	return matches
}

// missingMandatory lists the client's required skills that no preference
// keyword covers, using the same bidirectional substring test.
func (s *Scorer) missingMandatory(job *types.JobRecord) []string {
	if len(job.MandatorySkills) == 0 {
		return nil
	}
	keywords := lowered(s.prefs.Keywords)
	var missing []string
	for _, skill := range job.MandatorySkills {
		if !overlapsAny(strings.ToLower(skill), keywords) {
			missing = append(missing, skill)
		}
	}
	return missing
}

func (s *Scorer) financialDelta(job *types.JobRecord) float64 {
	switch job.Type {
	case types.EngagementHourly:
		floor, ceiling := s.prefs.HourlyRateMin, s.prefs.HourlyRateMax
		switch {
		case job.RateMin >= floor && job.RateMax <= ceiling:
			return hourlyBandBonus
		case job.RateMax < floor && job.RateMax > 0:
			return -hourlyUnderPenalty
		case job.RateMin >= floor:
			return hourlyFloorBonus
		}
	case types.EngagementFixed:
		floor := s.prefs.BudgetMin
		switch {
		case job.Budget >= floor:
			return fixedBudgetBonus
		case job.Budget > 0 && float64(job.Budget) < float64(floor)*fixedDeepUnderRatio:
			return -fixedUnderPenalty
		}
	}
	return 0
}

// financialFit reports whether the listing clears the configured floor;
// used by the advisory rationale with the same tests as scoring.
func (s *Scorer) financialFit(job *types.JobRecord) bool {
	switch job.Type {
	case types.EngagementHourly:
		return job.RateMin >= s.prefs.HourlyRateMin
	case types.EngagementFixed:
		return job.Budget >= s.prefs.BudgetMin
	}
	return false
}

// recencyDelta maps the "last viewed by client" phrasing to a score delta:
// minutes or moments ago is hot, a low single-digit hour count still warm,
// days or weeks stale.
func recencyDelta(lastViewed string) int {
	viewed := strings.ToLower(lastViewed)
	switch {
	case viewed == "":
		return 0
	case strings.Contains(viewed, "minute") || strings.Contains(viewed, "moment"):
		return recencyFreshBonus
	case strings.Contains(viewed, "hour"):
		n, _ := strconv.Atoi(reLeadingNumber.FindString(viewed))
		if n < recencyRecentHours {
			return recencyRecentBonus
		}
		return 0
	case strings.Contains(viewed, "day") || strings.Contains(viewed, "week"):
		return recencyStale
	}
	return 0
}

func lowered(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.ToLower(strings.TrimSpace(item)))
	}
	return out
}

func overlapsAny(term string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(kw, term) || strings.Contains(term, kw) {
			return true
		}
	}
	return false
}

func anySubstring(needles []string, haystack string) bool {
	lower := strings.ToLower(haystack)
	for _, needle := range needles {
		if needle == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
