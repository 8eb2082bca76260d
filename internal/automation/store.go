// Package automation runs the background jobs that work captured leads:
// nurturing sweeps, hot-lead alerts, daily analytics and the weekly
// market-update broadcasts.
package automation

import (
	"context"
	"time"

	"realty_leads_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// Store is the slice of the lead repository the processors need.
type Store interface {
	ListByStatusAndAge(ctx context.Context, status string, minAge, maxAge time.Duration, limit int) ([]domain.Lead, error)
	ListHotRecent(ctx context.Context, minScore int, status string, maxAge time.Duration) ([]domain.Lead, error)
	ListMarketUpdateCohort(ctx context.Context, maxAge time.Duration, limit int) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	AppendTrackingEvent(ctx context.Context, leadID uuid.UUID, event string, payload any) error
	AggregateDailyStats(ctx context.Context, day time.Time) (domain.DailyStats, error)
}

// Notifier is the slice of the notification service the processors need.
type Notifier interface {
	NotifyNewLead(ctx context.Context, lead domain.Lead)
	SendFollowUpSMS(ctx context.Context, lead domain.Lead) error
	SendUrgentAlert(ctx context.Context, lead domain.Lead) error
	SendMarketUpdateSMS(ctx context.Context, lead domain.Lead, message string) error
}

// SocialPoster publishes market updates to social media.
type SocialPoster interface {
	PostMarketUpdate(ctx context.Context, message string) error
}
