package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/match-intel/internal/types"
)

// Keyword-pool bounds used when syncing a profile into preferences.
const (
	maxSyncedKeywords = 50
	minKeywordLength  = 3
	minTitleWordLen   = 4

	// Rate band derived from the profile's listed hourly rate.
	rateFloorSlack   = 5
	rateCeilingSlack = 20
)

var reDigits = regexp.MustCompile(`\d+`)

// Profile extracts a freelancer profile summary (name, title, rate, skills)
// from a profile-page fragment. Best-effort like listing extraction: absent
// fields resolve to zero values.
func Profile(profileHTML string) (*types.ProfileSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(profileHTML))
	if err != nil {
		return nil, &ListingError{Message: "failed to parse profile markup", Cause: err}
	}

	root := doc.Selection
	summary := &types.ProfileSummary{
		ProfileName: resolve("", fromText(root, selProfileName)),
		Title:       resolve("", fromText(root, selProfileTitle)),
		Skills:      profileSkills(root),
		LastSync:    time.Now().UTC(),
	}

	if m := reDigits.FindString(root.Find(selProfileRate).First().Text()); m != "" {
		summary.Rate, _ = strconv.Atoi(m)
	}

	return summary, nil
}

// ApplyProfileSync folds a synced profile into the preferences: the rate
// band brackets the listed rate, and the keyword pool is the union of
// profile skills and longer title words, capped at maxSyncedKeywords.
func ApplyProfileSync(prefs *types.Preferences, summary *types.ProfileSummary) {
	if prefs == nil || summary == nil {
		return
	}

	if summary.Rate > 0 {
		prefs.HourlyRateMin = max(0, summary.Rate-rateFloorSlack)
		prefs.HourlyRateMax = summary.Rate + rateCeilingSlack
	}

	pool := make([]string, 0, len(summary.Skills))
	pool = append(pool, summary.Skills...)
	for _, word := range strings.Fields(summary.Title) {
		if len(word) >= minTitleWordLen {
			pool = append(pool, word)
		}
	}

	keywords := make(types.StringList, 0, len(pool))
	seen := make(map[string]bool, len(pool))
	for _, kw := range pool {
		kw = strings.TrimSpace(kw)
		if len(kw) < minKeywordLength {
			continue
		}
		key := strings.ToLower(kw)
		if seen[key] {
			continue
		}
		seen[key] = true
		keywords = append(keywords, kw)
		if len(keywords) == maxSyncedKeywords {
			break
		}
	}
	prefs.Keywords = keywords
	prefs.ProfileSummary = summary
}

func profileSkills(root *goquery.Selection) []string {
	var skills []string
	root.Find(selProfileSkills).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			skills = append(skills, text)
		}
	})
	return skills
}
