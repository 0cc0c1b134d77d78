package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/match-intel/internal/types"
)

// Advisory thresholds.
const (
	interviewingSaturation = 5
	ghostInterviewCeiling  = 2
	primeScoreFloor        = 90
	lowCompetitionInvites  = 3
	lowYieldCeiling        = 45
	regionAdvantageFloor   = 70
	personalizedScoreFloor = 80

	expertiseStrongFloor   = 5
	expertiseModerateFloor = 2
)

const neutralAdvice = "📈 NEUTRAL ALPHA: Moderate alignment. Review details manually."

// adviceContext bundles everything the rule predicates read.
type adviceContext struct {
	job    *types.JobRecord
	result *types.ScoreResult
	prefs  *types.Preferences
}

// adviceRule pairs a predicate with its headline message. Rules are
// evaluated top to bottom; the first match wins.
type adviceRule struct {
	when    func(*adviceContext) bool
	message func(*adviceContext) string
}

var adviceRules = []adviceRule{
	{
		when: func(c *adviceContext) bool { return c.job.ClientMentioned },
		message: func(*adviceContext) string {
			return "💎 COLLABORATION ALERT: Client has worked with you or similar profiles before. Priority bid."
		},
	},
	{
		when: func(c *adviceContext) bool { return c.job.Interviewing > interviewingSaturation },
		message: func(*adviceContext) string {
			return "⚠️ SATURATION WARNING: Client is already interviewing 5+ people. High risk of wasted effort."
		},
	},
	{
		when: func(c *adviceContext) bool {
			return c.job.InvitesSent > ghostInviteFloor && c.job.Interviewing < ghostInterviewCeiling
		},
		message: func(*adviceContext) string {
			return "🚩 GHOST JOB? Client sent 10+ invites but is not interviewing. Likely inactive."
		},
	},
	{
		when: func(c *adviceContext) bool { return c.result.Total >= primeScoreFloor },
		message: func(c *adviceContext) string {
			if c.job.InvitesSent < lowCompetitionInvites {
				return "🔥 ALPHA SIGNAL: Prime opportunity. Low competition + High profile alignment. Bid now."
			}
			return "⚡ HIGH ALPHA: Solid alignment and trust. Competitive bid recommended."
		},
	},
	{
		when: func(c *adviceContext) bool { return c.job.Proposals == types.ProposalsSaturated },
		message: func(*adviceContext) string {
			return "⚠️ FRICTION ALERT: Over-saturated (50+ proposals). Skip unless you are a 100% match."
		},
	},
	{
		when: func(c *adviceContext) bool { return !c.job.PaymentVerified },
		message: func(*adviceContext) string {
			return "🛑 TRUST WARNING: Payment unverified. High risk of project abandonment."
		},
	},
	{
		when: func(c *adviceContext) bool {
			return c.job.HireRate < lowHireRateCeiling && c.job.HireRate > 0
		},
		message: func(*adviceContext) string {
			return "⚠️ LOW HIRE RATE: Client rarely hires (<30%). Potential time-waster."
		},
	},
	{
		when: func(c *adviceContext) bool { return c.result.Total < lowYieldCeiling },
		message: func(*adviceContext) string {
			return "📉 LOW YIELD: Poor economic or skill alignment. Recommended skip."
		},
	},
	{
		when: func(c *adviceContext) bool {
			return c.result.LocationMatched && c.result.Total > regionAdvantageFloor
		},
		message: func(*adviceContext) string {
			return "📍 MARKET ADVANTAGE: Region match + Solid Score. Local domain expertise advantage."
		},
	},
}

// advise picks the headline message from the rule table, applies the
// stale-recency override and the personalized banner, and builds the
// three-band rationale.
func (s *Scorer) advise(job *types.JobRecord, result *types.ScoreResult) types.Advice {
	ctx := &adviceContext{job: job, result: result, prefs: s.prefs}

	message := neutralAdvice
	for _, rule := range adviceRules {
		if rule.when(ctx) {
			message = rule.message(ctx)
			break
		}
	}

	// A client who last looked days or weeks ago overrides every headline:
	// momentum is gone no matter how good the fit looks.
	viewed := strings.ToLower(job.LastViewed)
	if strings.Contains(viewed, "day") || strings.Contains(viewed, "week") {
		message = "🕸️ STALE POST: Client last viewed this job days ago. Momentum is likely gone."
	}

	if s.prefs.HasSyncedProfile() && result.Total > personalizedScoreFloor {
		message = fmt.Sprintf("✨ MATCH DETECTED for %q: %s",
			s.prefs.ProfileSummary.Title, afterHeadline(message))
	}

	return types.Advice{
		Message:   message,
		Rationale: s.rationale(job, result),
	}
}

// rationale always reports the three qualitative bands.
func (s *Scorer) rationale(job *types.JobRecord, result *types.ScoreResult) string {
	expertise := "Weak"
	if len(result.Matches) > expertiseStrongFloor {
		expertise = "Strong"
	} else if len(result.Matches) > expertiseModerateFloor {
		expertise = "Moderate"
	}

	financial := "Low"
	if s.financialFit(job) {
		financial = "High"
	}

	trust := "Low"
	if job.PaymentVerified {
		trust = "Verified"
	}

	return fmt.Sprintf("Expertise: %s | Financial: %s Fit | Trust: %s", expertise, financial, trust)
}

// afterHeadline strips the "LABEL: " prefix so the personalized banner can
// re-head the message.
func afterHeadline(message string) string {
	if _, rest, found := strings.Cut(message, ": "); found {
		return rest
	}
	return message
}
