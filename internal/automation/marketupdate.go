package automation

import (
	"context"
	"fmt"
	"time"

	"realty_leads_backend/internal/leads/domain"
)

// Weekly SMS blast cohort: a phone number on file, not closed, captured within
// the last 90 days, capped so a single blast stays bounded.
const (
	marketUpdateCohortMaxAge = 90 * 24 * time.Hour
	marketUpdateCohortLimit  = 500
)

// Market update copy, rotated by ISO week so consecutive posts differ.
var marketUpdateMessages = []string{
	"Detroit metro home values are still climbing! Curious what your home is worth today? Get a free valuation at waisonsrealty.com",
	"Inventory is tight across Allen Park and the Downriver communities — sellers are seeing multiple offers. Thinking of listing? We can help.",
	"Spring or fall, Southeast Michigan buyers are active year round. Find out what your home could sell for with a free market analysis.",
	"Homes near Allen Park are averaging under 30 days on market. Want to know your number? Request a free valuation from Waisons Realty.",
}

func marketUpdateMessage(now time.Time) string {
	_, week := now.ISOWeek()
	return marketUpdateMessages[week%len(marketUpdateMessages)]
}

func marketUpdateSMSBody() string {
	return "Waisons Realty market update: inventory is tight and homes in your area are moving fast. " +
		"Want an updated valuation? Call (313) 769-5353 or reply YES. Reply STOP to opt out."
}

// postSocialMarketUpdate publishes this week's market message to the social
// webhook.
func (e *Engine) postSocialMarketUpdate(ctx context.Context) error {
	if err := e.social.PostMarketUpdate(ctx, marketUpdateMessage(time.Now())); err != nil {
		return fmt.Errorf("post market update: %w", err)
	}
	return nil
}

// sendMarketUpdateBlast texts the contactable cohort the weekly market update.
// Delivery is recorded per lead so only messages that actually went out show
// up in the tracking log.
func (e *Engine) sendMarketUpdateBlast(ctx context.Context) error {
	leads, err := e.store.ListMarketUpdateCohort(ctx, marketUpdateCohortMaxAge, marketUpdateCohortLimit)
	if err != nil {
		return fmt.Errorf("select market update cohort: %w", err)
	}

	message := marketUpdateSMSBody()
	sent := 0
	for _, lead := range leads {
		if ctx.Err() != nil {
			break
		}
		if err := e.notifier.SendMarketUpdateSMS(ctx, lead, message); err != nil {
			e.log.Warn("market update sms failed", "lead_id", lead.ID, "error", err)
			continue
		}
		if err := e.store.AppendTrackingEvent(ctx, lead.ID, domain.EventMarketUpdateSMSSent, map[string]any{
			"campaign": "weekly_market_update",
		}); err != nil {
			e.log.Error("market update tracking failed", "lead_id", lead.ID, "error", err)
		}
		sent++
	}

	e.log.Info("market update blast complete", "cohort", len(leads), "sent", sent)
	return nil
}
