package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/match-intel/internal/types"
)

var (
	reDollar      = regexp.MustCompile(`\$(\d+)`)
	reBudget      = regexp.MustCompile(`(?i)Budget[:\s]*\$(\d+,?\d*)`)
	reAnyDollar   = regexp.MustCompile(`\$(\d+,?\d*)`)
	reProposals   = regexp.MustCompile(`(?i)Proposals:?\s*(50\+|\d+\s+to\s+\d+|Less than \d+|\d+)`)
	reHireRate    = regexp.MustCompile(`(?i)(\d+)%\s*hire rate`)
	rePercent     = regexp.MustCompile(`(\d+)%`)
	reSpendInText = regexp.MustCompile(`(?i)\$([0-9KkMm+.,]+)\s+(?:total spent|spent)`)
)

// Listing extracts a normalized JobRecord from one listing tile's markup.
// Absent fields resolve to their named defaults; the call never fails on
// malformed or partial markup.
func Listing(tileHTML string) (*types.JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tileHTML))
	if err != nil {
		return nil, &ListingError{Message: "failed to parse tile markup", Cause: err}
	}
	return fromTile(doc.Selection), nil
}

// fromTile runs the per-field resolver chains against one tile selection.
func fromTile(tile *goquery.Selection) *types.JobRecord {
	fullText := flatten(tile.Text())

	rec := &types.JobRecord{
		Title:       resolve(types.DefaultTitle, fromText(tile, selTitle)),
		Link:        resolve("", fromAttr(tile, selTitle, "href")),
		Description: resolve("", fromText(tile, selDescription)),
		Location:    resolve(types.DefaultLocation, fromText(tile, selLocation)),
		Proposals:   resolve(types.DefaultProposals, proposalsTier(tile), fromRegex(fullText, reProposals, 1)),
		ClientSpend: resolve(types.DefaultSpend, fromText(tile, selSpend), spendFromText(fullText)),
		Skills:      skillTags(tile),
	}

	rec.Type, rec.Budget, rec.RateMin, rec.RateMax = engagement(
		resolve(fullText, fromText(tile, selJobType)),
	)

	rec.HireRate = hireRate(tile, fullText)

	// Verified if the marker element exists or the flattened text says so.
	// The enrichment backfill can still flip this to true later.
	rec.PaymentVerified = tile.Find(selPayment).Length() > 0 ||
		strings.Contains(strings.ToLower(fullText), "payment verified")

	return rec
}

// engagement detects the billing type and parses the associated amounts.
// Hourly listings carry up to two dollar figures (the second defaults to the
// first); fixed-price listings carry a single budget figure with optional
// thousands separator.
func engagement(typeText string) (types.EngagementType, int, int, int) {
	switch {
	case strings.Contains(typeText, "Hourly"):
		rateMin, rateMax := 0, 0
		if rates := reDollar.FindAllStringSubmatch(typeText, 2); len(rates) > 0 {
			rateMin, _ = strconv.Atoi(rates[0][1])
			rateMax = rateMin
			if len(rates) > 1 {
				rateMax, _ = strconv.Atoi(rates[1][1])
			}
		}
		return types.EngagementHourly, 0, rateMin, rateMax

	case strings.Contains(typeText, "Fixed-price") || strings.Contains(typeText, "Budget"):
		budget := 0
		m := reBudget.FindStringSubmatch(typeText)
		if m == nil {
			m = reAnyDollar.FindStringSubmatch(typeText)
		}
		if m != nil {
			budget, _ = strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		}
		return types.EngagementFixed, budget, 0, 0
	}

	return types.EngagementUnknown, 0, 0, 0
}

// proposalsTier reads the structured proposals element, stripping the label
// prefix the tile renders.
func proposalsTier(tile *goquery.Selection) resolver {
	return func() (string, bool) {
		text := strings.TrimSpace(tile.Find(selProposals).First().Text())
		text = strings.TrimSpace(strings.TrimPrefix(text, "Proposals:"))
		return text, text != ""
	}
}

func spendFromText(fullText string) resolver {
	return func() (string, bool) {
		m := reSpendInText.FindStringSubmatch(fullText)
		if m == nil {
			return "", false
		}
		return "$" + m[1], true
	}
}

// hireRate resolves the hire-rate percentage: text pattern first (it appears
// in the tile body more reliably than the dedicated element), structured
// element second, zero default.
func hireRate(tile *goquery.Selection, fullText string) int {
	raw := resolve("",
		fromRegex(fullText, reHireRate, 1),
		fromRegex(tile.Find(selHireRate).First().Text(), rePercent, 1),
	)
	rate, _ := strconv.Atoi(raw)
	return rate
}

func skillTags(tile *goquery.Selection) []string {
	var skills []string
	tile.Find(selSkills).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			skills = append(skills, text)
		}
	})
	return skills
}
