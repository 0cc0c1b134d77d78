package types

import "time"

// SavedJob is a tracker entry for a listing the user (or the auto-save
// rule) decided to keep. Entries are deduplicated on Link.
type SavedJob struct {
	Job       JobRecord `json:"job"`
	Score     int       `json:"score"`
	SavedAt   time.Time `json:"saved_at"`
	AutoSaved bool      `json:"auto_saved,omitempty"`
}
