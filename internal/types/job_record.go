package types

import "regexp"

// EngagementType describes how a listing is billed.
type EngagementType string

// Engagement types detected from listing markup.
const (
	EngagementHourly  EngagementType = "Hourly"
	EngagementFixed   EngagementType = "Fixed-price"
	EngagementUnknown EngagementType = "Unknown"
)

// Named defaults applied when a tile field cannot be resolved.
const (
	DefaultTitle     = "Untitled Job"
	DefaultLocation  = "Remote"
	DefaultProposals = "0"
	DefaultSpend     = "$0"
)

// Proposal buckets that carry scoring weight.
const (
	ProposalsSaturated = "50+"
	ProposalsCrowded   = "20 to 50"
)

// jobIDPattern matches the short listing identifier embedded in canonical links.
var jobIDPattern = regexp.MustCompile(`(?i)~[0-9a-f]+`)

// JobRecord is the normalized view of one listing tile. Records are
// recomputed on every scan; Link is the only stable identity and joins a
// record to its Deep Intel and saved-job entries.
type JobRecord struct {
	Title           string         `json:"title"`
	Link            string         `json:"link"`
	Description     string         `json:"description"`
	Type            EngagementType `json:"type"`
	Budget          int            `json:"budget"`
	RateMin         int            `json:"rate_min"`
	RateMax         int            `json:"rate_max"`
	Location        string         `json:"location"`
	PaymentVerified bool           `json:"payment_verified"`
	ClientSpend     string         `json:"client_spend"`
	HireRate        int            `json:"hire_rate"`
	Proposals       string         `json:"proposals"`
	Skills          []string       `json:"skills"`

	// Enrichment fields, backfilled from Deep Intel. ClientMentioned is
	// only ever set via that backfill; the tile itself never carries it.
	ClientName        string   `json:"client_name,omitempty"`
	ClientMentioned   bool     `json:"client_mentioned,omitempty"`
	AvgRating         float64  `json:"avg_rating,omitempty"`
	AvgRatePaid       float64  `json:"avg_rate_paid,omitempty"`
	MemberSince       string   `json:"member_since,omitempty"`
	Interviewing      int      `json:"interviewing"`
	InvitesSent       int      `json:"invites_sent"`
	UnansweredInvites int      `json:"unanswered_invites"`
	LastViewed        string   `json:"last_viewed,omitempty"`
	ConnectsRequired  int      `json:"connects_required,omitempty"`
	MandatorySkills   []string `json:"mandatory_skills,omitempty"`
}

// JobID extracts the short listing identifier (e.g. "~021abc99") from a
// canonical link. Returns "" when the link carries none.
func JobID(link string) string {
	return jobIDPattern.FindString(link)
}
