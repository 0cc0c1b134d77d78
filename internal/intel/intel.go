// Package intel extracts Deep Intel records from listing detail-page
// markup. Each statistic resolves independently through a three-tier chain:
// structured stat panels, the embedded page-state JSON blob, and finally a
// regex scan over the raw markup. A hit at an earlier tier short-circuits
// the later tiers for that statistic only.
package intel

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/jonathan/match-intel/internal/types"
)

// Detail-page selectors, spanning the markup generations in the wild.
const (
	selReviews      = `.up-review-content p, .air3-review-content p, .up-review-content`
	selWorkHistory  = `[data-test="work-history"] p, .up-work-history p, .air3-work-history-item p`
	selClientStats  = `[data-test="about-client-stat"], .up-job-details-client-stat, .air3-list-item`
	selActivityList = `[data-test="activity-on-this-job"] li, .up-job-details-activity li, .air3-activity-list-item`
	selMandatory    = `[data-test="mandatory-skills"] [data-test="token"], [data-test="required-skills"] [data-test="token"], .up-skill-badge-required`
	selPageState    = `script[type="application/json"]`
	selPayment      = `[data-test="payment-verified"], .payment-verified, .up-icon-verified-check`
)

var (
	reClientName  = regexp.MustCompile(`(?:(?i:hi|thanks|thank you|with|to|for|was))\s+([A-Z][a-z]+)`)
	reHireRate    = regexp.MustCompile(`(?i)(\d+)%\s*hire rate|hire rate:\s*(\d+)%`)
	reSpend       = regexp.MustCompile(`(?i)\$([0-9KkMm+.,]+)\s+(?:total spent|spent)|spent:\s*\$([0-9KkMm+.,]+)`)
	reAvgRate     = regexp.MustCompile(`(?i)\$([0-9.]+)\s*/hr\s+avg hourly rate paid|avg hourly rate paid:\s*\$([0-9.]+)`)
	reRating      = regexp.MustCompile(`(?i)Rating is ([0-9.]+)|([45]\.[0-9])\s+of\s+5\s+stars|([0-9.]+)\s+Rating`)
	reMemberSince = regexp.MustCompile(`(?i)Member since ([A-Z][a-z]+ \d+, \d+)|Joined\s+([A-Z][a-z]+ \d+, \d+)`)
	reJobsPosted  = regexp.MustCompile(`(?i)(\d+)\s+jobs? posted`)
	reHires       = regexp.MustCompile(`(?i)(\d+)\s+hires?\b`)
	reHours       = regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s+hours\b`)
	reConnects    = regexp.MustCompile(`(?i)(\d+)\s+Connects`)
	reLocation    = regexp.MustCompile(`([A-Z][A-Za-z\s,]+)\d{1,2}:\d{2}\s+(?:AM|PM)`)

	reInterviewing = regexp.MustCompile(`(?i)Interviewing:\s*(\d+)`)
	reInvites      = regexp.MustCompile(`(?i)Invites sent:\s*(\d+)`)
	reUnanswered   = regexp.MustCompile(`(?i)Unanswered invites:\s*(\d+)`)
	reProposals    = regexp.MustCompile(`(?i)Proposals:\s*([0-9\-\s+to]+)`)
	reLastViewed   = regexp.MustCompile(`(?i)Last viewed by client:\s*([^<\n]+)`)

	reDigits = regexp.MustCompile(`\d+`)
)

// nameStoplist rejects generic capitalized tokens the review heuristic
// would otherwise mistake for a client name.
var nameStoplist = map[string]bool{
	"upwork": true, "company": true, "client": true, "the": true, "project": true,
	"team": true, "this": true, "that": true, "you": true, "your": true,
	"he": true, "she": true, "they": true, "him": true, "her": true,
	"them": true, "it": true, "my": true, "our": true, "job": true,
}

// page bundles the parsed views of one detail document so each stat can
// walk its own tier chain without re-parsing.
type page struct {
	doc   *goquery.Document
	html  string
	text  string
	state gjson.Result
}

// Parse extracts a Deep Intel record from detail-page markup. It returns
// nil when the input is empty: a failed fetch or a closed modal is "no
// enrichment available", never an error. Any field the markup does not
// yield keeps its zero default.
func Parse(detailHTML string) *types.DeepIntel {
	if strings.TrimSpace(detailHTML) == "" {
		return nil
	}

	p := &page{html: detailHTML}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(detailHTML)); err == nil {
		p.doc = doc
		p.text = flatten(doc.Text())
		p.state = pageState(doc)
	} else {
		p.text = detailHTML
	}

	rec := &types.DeepIntel{
		ClientName:       p.clientName(),
		Location:         p.location(),
		MandatorySkills:  p.mandatorySkills(),
		HireRate:         p.statInt("hire rate", "buyer.stats.hireRate", reHireRate),
		ClientSpend:      p.spend(),
		AvgRatePaid:      p.statFloat("avg hourly rate paid", "buyer.avgHourlyJobsRate.amount", reAvgRate),
		AvgRating:        p.statFloat("rating", "buyer.stats.score", reRating),
		MemberSince:      p.statText("member since", "buyer.company.contractDate", reMemberSince),
		JobsPosted:       p.statInt("jobs posted", "buyer.jobs.postedCount", reJobsPosted),
		HireCount:        p.statInt("hires", "buyer.stats.totalAssignments", reHires),
		HoursBilled:      p.statFloat("hours", "buyer.stats.hoursCount", reHours),
		Activity:         p.activity(),
		ConnectsRequired: p.statInt("connects", "connects.requiredConnects", reConnects),
		PaymentVerified:  p.paymentVerified(),
		CapturedAt:       time.Now().UTC(),
	}

	return rec
}

// clientName scans review blocks for a capitalized token following a common
// report phrase, rejecting stoplisted words, then falls back to work-history
// blocks when no review yields a match.
func (p *page) clientName() string {
	if p.doc == nil {
		return ""
	}
	for _, selector := range []string{selReviews, selWorkHistory} {
		name := ""
		p.doc.Find(selector).EachWithBreak(func(_ int, block *goquery.Selection) bool {
			for _, m := range reClientName.FindAllStringSubmatch(block.Text(), -1) {
				candidate := m[1]
				if !nameStoplist[strings.ToLower(candidate)] {
					name = candidate
					return false
				}
			}
			return true
		})
		if name != "" {
			return name
		}
	}
	return ""
}

// location falls out of the client sidebar's "City, Country 10:05 AM" line.
func (p *page) location() string {
	if m := reLocation.FindStringSubmatch(p.html); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func (p *page) spend() string {
	if raw := p.statText("total spent", "buyer.stats.totalCharges.amount", nil); raw != "" {
		if strings.HasPrefix(raw, "$") {
			return raw
		}
		return "$" + raw
	}
	if m := firstGroup(reSpend, p.html); m != "" {
		return "$" + m
	}
	return ""
}

// statText resolves one textual stat through the tier chain.
func (p *page) statText(panelLabel, statePath string, pattern *regexp.Regexp) string {
	if v, ok := p.panelStat(panelLabel); ok {
		return v
	}
	if p.state.Exists() {
		if v := p.state.Get(statePath); v.Exists() {
			return v.String()
		}
	}
	if pattern != nil {
		return firstGroup(pattern, p.html)
	}
	return ""
}

func (p *page) statInt(panelLabel, statePath string, pattern *regexp.Regexp) int {
	raw := p.statText(panelLabel, statePath, pattern)
	n, _ := strconv.Atoi(reDigits.FindString(raw))
	return n
}

func (p *page) statFloat(panelLabel, statePath string, pattern *regexp.Regexp) float64 {
	raw := p.statText(panelLabel, statePath, pattern)
	raw = strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", "")
	f, _ := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return f
}

// panelStat reads a dedicated stat panel entry whose text mentions the
// label, returning the value portion after the label.
func (p *page) panelStat(label string) (string, bool) {
	if p.doc == nil {
		return "", false
	}
	value, found := "", false
	p.doc.Find(selClientStats).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		text := flatten(item.Text())
		idx := strings.Index(strings.ToLower(text), label)
		if idx < 0 {
			return true
		}
		rest := strings.Trim(strings.TrimSpace(text[idx+len(label):]), ":")
		if rest == "" {
			// Some panels render "38% hire rate" with the value first.
			rest = strings.TrimSpace(text[:idx])
		}
		if rest != "" {
			value, found = strings.TrimSpace(rest), true
			return false
		}
		return true
	})
	return value, found
}

// activity resolves the per-job activity counters: itemized label/value
// list entries first, per-counter regex over the flattened text second.
// Counters default to zero and proposals to the empty string so callers can
// do arithmetic without nil checks.
func (p *page) activity() types.Activity {
	var act types.Activity

	if p.doc != nil {
		p.doc.Find(selActivityList).Each(func(_ int, li *goquery.Selection) {
			text := flatten(li.Text())
			lower := strings.ToLower(text)
			switch {
			case strings.Contains(lower, "unanswered"):
				act.UnansweredInvites = firstInt(text)
			case strings.Contains(lower, "interviewing"):
				act.Interviewing = firstInt(text)
			case strings.Contains(lower, "invites sent"):
				act.InvitesSent = firstInt(text)
			case strings.Contains(lower, "last viewed"):
				if i := strings.Index(lower, ":"); i >= 0 {
					act.LastViewed = strings.TrimSpace(text[i+1:])
				}
			case strings.Contains(lower, "proposals"):
				if i := strings.Index(lower, ":"); i >= 0 {
					act.Proposals = strings.TrimSpace(text[i+1:])
				}
			}
		})
	}

	if act.Interviewing == 0 {
		act.Interviewing = regexInt(reInterviewing, p.text)
	}
	if act.InvitesSent == 0 {
		act.InvitesSent = regexInt(reInvites, p.text)
	}
	if act.UnansweredInvites == 0 {
		act.UnansweredInvites = regexInt(reUnanswered, p.text)
	}
	if act.Proposals == "" {
		act.Proposals = strings.TrimSpace(firstGroup(reProposals, p.text))
	}
	if act.LastViewed == "" {
		act.LastViewed = strings.TrimSpace(firstGroup(reLastViewed, p.text))
	}

	return act
}

func (p *page) mandatorySkills() []string {
	if p.doc == nil {
		return nil
	}
	var skills []string
	p.doc.Find(selMandatory).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			skills = append(skills, text)
		}
	})
	return skills
}

func (p *page) paymentVerified() bool {
	if p.doc != nil && p.doc.Find(selPayment).Length() > 0 {
		return true
	}
	if p.state.Exists() && p.state.Get("buyer.isPaymentMethodVerified").Bool() {
		return true
	}
	return strings.Contains(strings.ToLower(p.text), "payment verified")
}

// pageState returns the first valid embedded JSON blob, if the page ships one.
func pageState(doc *goquery.Document) gjson.Result {
	var state gjson.Result
	doc.Find(selPageState).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		raw := strings.TrimSpace(script.Text())
		if raw == "" || !gjson.Valid(raw) {
			return true
		}
		state = gjson.Parse(raw)
		return false
	})
	return state
}

// firstGroup returns the first non-empty capture group of the first match,
// accommodating the alternation patterns above.
func firstGroup(pattern *regexp.Regexp, text string) string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return strings.TrimSpace(group)
		}
	}
	return ""
}

func regexInt(pattern *regexp.Regexp, text string) int {
	n, _ := strconv.Atoi(firstGroup(pattern, text))
	return n
}

func firstInt(text string) int {
	n, _ := strconv.Atoi(reDigits.FindString(text))
	return n
}

func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
