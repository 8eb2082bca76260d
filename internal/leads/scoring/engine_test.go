package scoring

import (
	"strings"
	"testing"
)

func TestScore_MaxProfileReachesExactly100(t *testing.T) {
	in := Input{
		Timeframe:    "immediately",
		PropertyType: "commercial",
		Location:     "Detroit",
		HasPhone:     true,
		HasEmail:     true,
		Source:       "google-ads",
		Comments:     strings.Repeat("a", 25),
	}

	// 30 + 25 + 15 + 15 + 10 + 5 = 100, no clamping needed.
	if got := Score(in); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScore_AllDefaultsIs32(t *testing.T) {
	// just-curious (5) + unknown property default... empty property type is
	// unrecognized and defaults to 15; empty source defaults to 5.
	// The capture layer fills in "single-family" and "website" defaults,
	// which score 20 and 7: 5+20+0+0+7+0 = 32.
	in := Input{
		Timeframe:    "just-curious",
		PropertyType: "single-family",
		Source:       "website",
	}
	if got := Score(in); got != 32 {
		t.Fatalf("expected 32, got %d", got)
	}
}

func TestScore_UnknownTagsFallBackToDefaults(t *testing.T) {
	in := Input{
		Timeframe:    "someday-maybe",
		PropertyType: "castle",
		Source:       "carrier-pigeon",
	}
	// 5 + 15 + 5 = 25
	if got := Score(in); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}

func TestScore_IsDeterministic(t *testing.T) {
	in := Input{
		Timeframe:    "1-3-months",
		PropertyType: "condo",
		Location:     "Dearborn, MI",
		HasEmail:     true,
		Source:       "referral",
		Comments:     "looking to sell soon",
	}

	first := Score(in)
	for i := 0; i < 10; i++ {
		if got := Score(in); got != first {
			t.Fatalf("score changed between calls: %d then %d", first, got)
		}
	}
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	cases := []Input{
		{},
		{Timeframe: "immediately", PropertyType: "investment", Location: "allen park",
			HasPhone: true, HasEmail: true, Source: "google-ads",
			UTMCampaign: "premium-fall", Comments: strings.Repeat("x", 500)},
		{Timeframe: "garbage", PropertyType: "garbage", Source: "garbage"},
	}

	for i, in := range cases {
		got := Score(in)
		if got < 0 || got > 100 {
			t.Fatalf("case %d: score %d out of [0,100]", i, got)
		}
	}
}

func TestScore_PremiumCampaignBonusIsClamped(t *testing.T) {
	in := Input{
		Timeframe:    "immediately",
		PropertyType: "investment",
		Location:     "Allen Park",
		HasPhone:     true,
		HasEmail:     true,
		Source:       "google-ads",
		UTMCampaign:  "premium-buyers",
		Comments:     strings.Repeat("b", 30),
	}
	// Raw sum is 103; the clamp caps it.
	if got := Score(in); got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
}

func TestScore_LocationTierOrder(t *testing.T) {
	cases := []struct {
		location string
		want     int
	}{
		{"Allen Park, Michigan", 15}, // primary tier wins over the state tier
		{"Lincoln Park MI", 12},
		{"Warren", 10},
		{"downtown detroit", 15},
		{"somewhere in michigan", 5},
		{"Columbus, Ohio", 0},
		{"", 0},
	}

	for _, tc := range cases {
		if got := locationBonus(tc.location); got != tc.want {
			t.Fatalf("locationBonus(%q) = %d, want %d", tc.location, got, tc.want)
		}
	}
}

func TestTier_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{80, TierHot},
		{79, TierWarm},
		{60, TierWarm},
		{59, TierQualified},
		{40, TierQualified},
		{39, TierCold},
		{0, TierCold},
	}
	for _, tc := range cases {
		if got := Tier(tc.score); got != tc.want {
			t.Fatalf("Tier(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestPriority_TimeframeOverridesScore(t *testing.T) {
	if got := Priority(50, "immediately"); got != PriorityUrgent {
		t.Fatalf("Priority(50, immediately) = %q, want urgent", got)
	}
	if got := Priority(85, "just-curious"); got != PriorityUrgent {
		t.Fatalf("Priority(85, just-curious) = %q, want urgent", got)
	}
	if got := Priority(50, "1-3-months"); got != PriorityHigh {
		t.Fatalf("Priority(50, 1-3-months) = %q, want high", got)
	}
	if got := Priority(30, "just-curious"); got != PriorityNormal {
		t.Fatalf("Priority(30, just-curious) = %q, want normal", got)
	}
}

func TestRecommendedActions_BracketsAndLocationExtras(t *testing.T) {
	hot := RecommendedActions(85, Input{})
	if len(hot) != 3 || hot[0] != "Call within 15 minutes" {
		t.Fatalf("unexpected hot actions: %v", hot)
	}

	cold := RecommendedActions(20, Input{})
	if len(cold) != 3 || cold[0] != "Send welcome email" {
		t.Fatalf("unexpected cold actions: %v", cold)
	}

	local := RecommendedActions(85, Input{Location: "Allen Park"})
	if len(local) != 5 {
		t.Fatalf("expected 2 location extras, got %v", local)
	}
	if local[3] != "Highlight local market expertise" {
		t.Fatalf("unexpected local action order: %v", local)
	}
}
