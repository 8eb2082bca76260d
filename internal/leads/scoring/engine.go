// Package scoring computes lead scores for the Southeast Michigan market.
// Every function here is pure and deterministic: the same input always
// produces the same output, and nothing touches the store or the network.
// Scores are computed once at capture time and read by the automation
// processors afterwards.
package scoring

import "strings"

// Tier labels derived from the score.
const (
	TierHot       = "hot"
	TierWarm      = "warm"
	TierQualified = "qualified"
	TierCold      = "cold"
)

// Priority labels for routing.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// Input holds the lead attributes the score is derived from. Every field is
// optional; missing or unrecognized values fall back to documented defaults
// rather than producing an error, because form validation happens upstream.
type Input struct {
	Timeframe    string
	PropertyType string
	Location     string
	HasPhone     bool
	HasEmail     bool
	Source       string
	UTMCampaign  string
	Comments     string
}

const (
	defaultTimeframeScore = 5  // matches the "just-curious" tier
	defaultPropertyScore  = 15 // unknown property types land mid-table
	defaultSourceScore    = 5  // unknown acquisition channels
)

// timeframeScores weights purchase urgency (0-30 points).
var timeframeScores = map[string]int{
	"immediately":  30,
	"1-3-months":   25,
	"3-6-months":   20,
	"6-12-months":  15,
	"just-curious": 5,
}

// propertyTypeScores weights expected commission value (0-25 points).
var propertyTypeScores = map[string]int{
	"investment":    25,
	"commercial":    25,
	"multi-family":  22,
	"single-family": 20,
	"duplex":        18,
	"townhouse":     15,
	"condo":         12,
	"land":          10,
}

// sourceScores weights acquisition channel quality (0-10 points).
var sourceScores = map[string]int{
	"google-ads":     10,
	"facebook-ads":   9,
	"organic-search": 8,
	"referral":       8,
	"website":        7,
	"social-media":   6,
	"email-campaign": 5,
	"other":          3,
}

// locationTiers maps target geographies to their bonus (0-15 points).
// Ordered most-specific first: the match is a substring check and city names
// nest inside the broader region names, so the first matching tier wins.
var locationTiers = []struct {
	markers []string
	points  int
}{
	// Primary service cities (headquarters and core market)
	{primaryMarkets, 15},
	// Adjacent cities
	{[]string{"dearborn", "lincoln park", "melvindale"}, 12},
	// Broader metro area
	{[]string{"warren", "sterling heights", "troy", "farmington", "livonia"}, 10},
	// Michigan resident
	{[]string{"michigan", "mi"}, 5},
}

var primaryMarkets = []string{"allen park", "detroit"}

// Score maps lead attributes to an integer in [0,100].
// Factors are additive and independently bounded; the raw sum can exceed 100
// (the premium campaign bonus is on top of the per-factor caps) and is
// clamped at the end.
func Score(in Input) int {
	score := 0

	// 1. Timeframe (0-30)
	if points, ok := timeframeScores[in.Timeframe]; ok {
		score += points
	} else {
		score += defaultTimeframeScore
	}

	// 2. Property type (0-25)
	if points, ok := propertyTypeScores[in.PropertyType]; ok {
		score += points
	} else {
		score += defaultPropertyScore
	}

	// 3. Location bonus (0-15)
	score += locationBonus(in.Location)

	// 4. Contact completeness (0-15)
	switch {
	case in.HasEmail && in.HasPhone:
		score += 15
	case in.HasEmail:
		score += 10
	case in.HasPhone:
		score += 8
	}

	// 5. Source quality (0-10)
	if points, ok := sourceScores[in.Source]; ok {
		score += points
	} else {
		score += defaultSourceScore
	}

	// 6. Engagement indicators (0-5)
	switch {
	case len(in.Comments) > 20:
		score += 5
	case len(in.Comments) > 5:
		score += 3
	}

	// Premium campaign bonus, additive beyond the factor caps.
	if strings.Contains(in.UTMCampaign, "premium") {
		score += 3
	}

	return clamp(score)
}

// Tier returns the quality tier for a score.
func Tier(score int) string {
	switch {
	case score >= 80:
		return TierHot
	case score >= 60:
		return TierWarm
	case score >= 40:
		return TierQualified
	default:
		return TierCold
	}
}

// Priority returns the routing priority. The timeframe can raise the
// priority independently of the score: someone buying immediately is urgent
// even when the rest of their profile scores low.
func Priority(score int, timeframe string) string {
	switch {
	case score >= 80 || timeframe == "immediately":
		return PriorityUrgent
	case score >= 60 || timeframe == "1-3-months":
		return PriorityHigh
	default:
		return PriorityNormal
	}
}

// RecommendedActions returns the ordered follow-up steps for a lead.
// Brackets mirror the tier boundaries; primary-geography leads get two
// extra local actions appended.
func RecommendedActions(score int, in Input) []string {
	var actions []string

	switch {
	case score >= 80:
		actions = append(actions,
			"Call within 15 minutes",
			"Send premium property listings",
			"Schedule in-person consultation",
		)
	case score >= 60:
		actions = append(actions,
			"Call within 2 hours",
			"Send market analysis",
			"Add to high-priority email sequence",
		)
	case score >= 40:
		actions = append(actions,
			"Call within 24 hours",
			"Send welcome email with resources",
			"Add to nurturing email sequence",
		)
	default:
		actions = append(actions,
			"Send welcome email",
			"Add to monthly newsletter",
			"Follow up in 1 week",
		)
	}

	if containsAny(strings.ToLower(in.Location), primaryMarkets) {
		actions = append(actions,
			"Highlight local market expertise",
			"Mention nearby office location",
		)
	}

	return actions
}

func locationBonus(location string) int {
	text := strings.ToLower(location)
	if text == "" {
		return 0
	}

	for _, tier := range locationTiers {
		if containsAny(text, tier.markers) {
			return tier.points
		}
	}
	return 0
}

// containsAny checks if s contains any of the markers.
func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
