package automation

import (
	"context"
	"fmt"
	"time"

	"realty_leads_backend/internal/leads/domain"
)

// Nurturing sweep selection. Leads younger than the minimum age are left for
// the high-priority sweep; leads older than the maximum age are considered
// stale. Flipping the status to contacted is what keeps a lead from being
// selected twice.
const (
	nurturingMinAge    = 1 * time.Hour
	nurturingMaxAge    = 24 * time.Hour
	nurturingBatchSize = 50
	nurturingHotScore  = 70
)

// processNewLeads works the backlog of untouched leads: alert the admin about
// the strong ones, text the ones we can reach, then mark them contacted.
func (e *Engine) processNewLeads(ctx context.Context) error {
	leads, err := e.store.ListByStatusAndAge(ctx, domain.StatusNew, nurturingMinAge, nurturingMaxAge, nurturingBatchSize)
	if err != nil {
		return fmt.Errorf("select nurturing batch: %w", err)
	}

	processed := 0
	for _, lead := range leads {
		if err := e.nurtureLead(ctx, lead); err != nil {
			// one bad lead must not sink the rest of the batch
			e.log.Error("nurturing lead failed", "lead_id", lead.ID, "error", err)
			continue
		}
		processed++
	}

	if processed > 0 {
		e.log.Info("nurturing sweep complete", "selected", len(leads), "processed", processed)
	}
	return nil
}

func (e *Engine) nurtureLead(ctx context.Context, lead domain.Lead) error {
	if lead.Score >= nurturingHotScore {
		e.notifier.NotifyNewLead(ctx, lead)
	}

	if lead.PhoneNumber() != "" {
		if err := e.notifier.SendFollowUpSMS(ctx, lead); err != nil {
			e.log.Warn("follow-up sms failed", "lead_id", lead.ID, "error", err)
		}
	}

	if err := e.store.UpdateStatus(ctx, lead.ID, domain.StatusContacted); err != nil {
		return fmt.Errorf("mark contacted: %w", err)
	}

	return e.store.AppendTrackingEvent(ctx, lead.ID, domain.EventAutomationProcessed, map[string]any{
		"action":         "nurturing_follow_up",
		"score":          lead.Score,
		"previousStatus": lead.Status,
		"processedAt":    time.Now().UTC(),
	})
}
