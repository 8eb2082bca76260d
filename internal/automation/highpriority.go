package automation

import (
	"context"
	"fmt"
	"time"

	"realty_leads_backend/internal/leads/domain"
)

const (
	highPriorityMinScore = 80
	highPriorityMaxAge   = 5 * time.Minute
)

// processHighPriorityLeads alerts the admin about very hot leads minutes after
// capture. The lead's status is deliberately left untouched: a lead that is
// still new on the next sweep alerts again until its age leaves the window,
// and the nurturing sweep later performs the actual status transition.
func (e *Engine) processHighPriorityLeads(ctx context.Context) error {
	leads, err := e.store.ListHotRecent(ctx, highPriorityMinScore, domain.StatusNew, highPriorityMaxAge)
	if err != nil {
		return fmt.Errorf("select high-priority leads: %w", err)
	}

	for _, lead := range leads {
		if err := e.notifier.SendUrgentAlert(ctx, lead); err != nil {
			e.log.Error("urgent alert failed", "lead_id", lead.ID, "error", err)
			continue
		}
		if err := e.store.AppendTrackingEvent(ctx, lead.ID, domain.EventUrgentNotificationSent, map[string]any{
			"score": lead.Score,
		}); err != nil {
			e.log.Error("urgent alert tracking failed", "lead_id", lead.ID, "error", err)
		}
	}

	if len(leads) > 0 {
		e.log.Info("high-priority sweep complete", "alerted", len(leads))
	}
	return nil
}
