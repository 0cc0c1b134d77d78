package types

// Advice is the advisory output attached to every score: one headline
// message picked by a first-match-wins rule table plus a rationale that
// always reports the expertise, financial, and trust bands.
type Advice struct {
	Message   string `json:"message"`
	Rationale string `json:"rationale"`
}

// ScoreResult is the full output of scoring one JobRecord against the
// user's preferences. Always recomputed, never cached.
type ScoreResult struct {
	Total            int      `json:"total"`
	Matches          []string `json:"matches"`
	MissingMandatory []string `json:"missing_mandatory,omitempty"`
	LocationMatched  bool     `json:"location_matched"`
	Blacklisted      bool     `json:"blacklisted"`
	HighCompetition  bool     `json:"high_competition"`
	ClientMentioned  bool     `json:"client_mentioned"`
	PaymentVerified  bool     `json:"payment_verified"`
	RecencyDelta     int      `json:"recency_delta"`
	Advice           Advice   `json:"advice"`
}
