package types

import "time"

// IntelTTL is the freshness window for cached Deep Intel records.
const IntelTTL = 3 * time.Hour

// Activity holds the per-listing client activity counters. Counters are
// plain ints and Proposals a plain string so the scorer can do arithmetic
// on them without nil checks.
type Activity struct {
	Interviewing      int    `json:"interviewing"`
	InvitesSent       int    `json:"invites_sent"`
	UnansweredInvites int    `json:"unanswered_invites"`
	Proposals         string `json:"proposals"`
	LastViewed        string `json:"last_viewed,omitempty"`
}

// DeepIntel is the enrichment record extracted from a listing's detail
// page. It is fetched lazily, cached for IntelTTL keyed by the short
// listing identifier, and merged onto JobRecords on every scan.
type DeepIntel struct {
	ClientName       string   `json:"client_name,omitempty"`
	Location         string   `json:"location,omitempty"`
	MandatorySkills  []string `json:"mandatory_skills,omitempty"`
	HireRate         int      `json:"hire_rate,omitempty"`
	ClientSpend      string   `json:"client_spend,omitempty"`
	AvgRatePaid      float64  `json:"avg_rate_paid,omitempty"`
	AvgRating        float64  `json:"avg_rating,omitempty"`
	MemberSince      string   `json:"member_since,omitempty"`
	JobsPosted       int      `json:"jobs_posted,omitempty"`
	HireCount        int      `json:"hire_count,omitempty"`
	HoursBilled      float64  `json:"hours_billed,omitempty"`
	Activity         Activity `json:"activity"`
	ConnectsRequired int      `json:"connects_required,omitempty"`
	PaymentVerified  bool     `json:"payment_verified,omitempty"`

	CapturedAt time.Time `json:"captured_at"`
}

// Fresh reports whether the record is still within the freshness window.
func (d *DeepIntel) Fresh(now time.Time) bool {
	if d == nil || d.CapturedAt.IsZero() {
		return false
	}
	return now.Sub(d.CapturedAt) < IntelTTL
}

// ApplyTo merges the intel record onto a job record. Client-name fields are
// set whenever present, tile-level stats are backfilled only when the
// lightweight extractor resolved nothing but the default, and activity,
// connects, and mandatory skills are taken unconditionally because the
// detail page is always fresher than the tile. The merge is idempotent and
// an unset intel field never clobbers an extracted value.
func (d *DeepIntel) ApplyTo(job *JobRecord) {
	if d == nil || job == nil {
		return
	}

	if d.ClientName != "" {
		job.ClientName = d.ClientName
		job.ClientMentioned = true
	}
	if d.Location != "" && (job.Location == "" || job.Location == DefaultLocation) {
		job.Location = d.Location
	}
	if d.HireRate > 0 && job.HireRate == 0 {
		job.HireRate = d.HireRate
	}
	if d.ClientSpend != "" && (job.ClientSpend == "" || job.ClientSpend == DefaultSpend) {
		job.ClientSpend = d.ClientSpend
	}
	if d.AvgRating > 0 {
		job.AvgRating = d.AvgRating
	}
	if d.AvgRatePaid > 0 {
		job.AvgRatePaid = d.AvgRatePaid
	}
	if d.MemberSince != "" {
		job.MemberSince = d.MemberSince
	}
	if d.PaymentVerified {
		job.PaymentVerified = true
	}

	job.Interviewing = d.Activity.Interviewing
	job.InvitesSent = d.Activity.InvitesSent
	job.UnansweredInvites = d.Activity.UnansweredInvites
	job.LastViewed = d.Activity.LastViewed
	if d.Activity.Proposals != "" {
		job.Proposals = d.Activity.Proposals
	}
	job.ConnectsRequired = d.ConnectsRequired
	job.MandatorySkills = append([]string(nil), d.MandatorySkills...)
}
