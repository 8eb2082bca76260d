package automation

import (
	"context"
	"fmt"
	"time"
)

// aggregateDailyAnalytics summarizes yesterday's lead intake. The numbers land
// in the structured log; the analytics API computes the same aggregate on
// demand for arbitrary days.
func (e *Engine) aggregateDailyAnalytics(ctx context.Context) error {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	stats, err := e.store.AggregateDailyStats(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("aggregate daily stats: %w", err)
	}

	e.log.Info("daily lead analytics",
		"date", stats.Date.Format("2006-01-02"),
		"total_leads", stats.TotalLeads,
		"average_score", stats.AverageScore,
		"hot_leads", stats.HotLeads,
		"warm_leads", stats.WarmLeads,
		"urgent_timeframe_leads", stats.UrgentTimeframeLeads,
	)
	return nil
}
