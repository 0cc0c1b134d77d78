// Package types provides type definitions for structured data used throughout the match-intel system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"time"
)

// DefaultMinScoreToNotify is the notification threshold used when none is configured.
const DefaultMinScoreToNotify = 85

// DefaultHourlyRateMax is the rate ceiling used when none is configured.
const DefaultHourlyRateMax = 100

// StringList is a []string that tolerates malformed persisted values.
// Settings documents written by older versions (or edited by hand) sometimes
// carry a string or an object where a list is expected; those decode to an
// empty list instead of failing the whole document.
type StringList []string

// UnmarshalJSON decodes a JSON array of strings, falling back to an empty
// list when the value is not list-shaped.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	// Salvage mixed-type arrays by keeping the string entries.
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			var s string
			if err := json.Unmarshal(item, &s); err == nil && s != "" {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}
	*l = []string{}
	return nil
}

// ProfileSummary captures the synced freelancer profile used to personalize advice.
type ProfileSummary struct {
	ProfileName string    `json:"profile_name,omitempty"`
	Title       string    `json:"title,omitempty"`
	Rate        int       `json:"rate,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	LastSync    time.Time `json:"last_sync,omitzero"`
}

// Preferences holds the user-supplied matching configuration read at the
// start of every scoring pass.
type Preferences struct {
	HourlyRateMin        int             `json:"hourly_rate_min" validate:"min=0"`
	HourlyRateMax        int             `json:"hourly_rate_max" validate:"min=0"`
	BudgetMin            int             `json:"budget_min" validate:"min=0"`
	Keywords             StringList      `json:"keywords"`
	Locations            StringList      `json:"locations"`
	BlacklistedLocations StringList      `json:"blacklisted_locations"`
	MinScoreToNotify     int             `json:"min_score_to_notify" validate:"min=0,max=100"`
	WebhookURL           string          `json:"webhook_url,omitempty" validate:"omitempty,url"`
	AutoSave             *bool           `json:"auto_save,omitempty"`
	ProfileSummary       *ProfileSummary `json:"profile_summary,omitempty"`
}

// DefaultPreferences returns the configuration used before the user has saved anything.
func DefaultPreferences() *Preferences {
	return &Preferences{
		HourlyRateMax:        DefaultHourlyRateMax,
		Keywords:             StringList{},
		Locations:            StringList{},
		BlacklistedLocations: StringList{},
		MinScoreToNotify:     DefaultMinScoreToNotify,
	}
}

// Normalize coerces the preference collections into well-formed sets:
// nil lists become empty, keywords are trimmed and deduplicated
// case-insensitively, and out-of-range thresholds fall back to defaults.
func (p *Preferences) Normalize() {
	p.Keywords = dedupeTrimmed(p.Keywords)
	p.Locations = dedupeTrimmed(p.Locations)
	p.BlacklistedLocations = dedupeTrimmed(p.BlacklistedLocations)

	if p.MinScoreToNotify <= 0 || p.MinScoreToNotify > 100 {
		p.MinScoreToNotify = DefaultMinScoreToNotify
	}
	if p.HourlyRateMin < 0 {
		p.HourlyRateMin = 0
	}
	if p.HourlyRateMax < 0 {
		p.HourlyRateMax = 0
	}
	if p.BudgetMin < 0 {
		p.BudgetMin = 0
	}
}

// AutoSaveEnabled reports whether high matches should be saved to the tracker.
// Enabled unless explicitly turned off.
func (p *Preferences) AutoSaveEnabled() bool {
	return p.AutoSave == nil || *p.AutoSave
}

// HasSyncedProfile reports whether a profile summary with a title has been synced.
func (p *Preferences) HasSyncedProfile() bool {
	return p.ProfileSummary != nil && strings.TrimSpace(p.ProfileSummary.Title) != ""
}

func dedupeTrimmed(in StringList) StringList {
	out := make(StringList, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, item := range in {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}
