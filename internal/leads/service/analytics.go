package service

import (
	"context"
	"time"

	"realty_leads_backend/internal/leads/domain"
	"realty_leads_backend/platform/apperr"
)

// Analytics range limits. Sources and campaigns are top-N breakdowns; the
// trend covers at most one row per calendar day.
const (
	defaultRangeDays = 30
	maxRangeDays     = 365
	sourceLimit      = 10
	trendLimit       = 30
	campaignLimit    = 5
)

// DashboardStats bundles every aggregate the analytics dashboard shows.
type DashboardStats struct {
	Days      int
	Funnel    domain.FunnelStats
	Sources   []domain.SourceStats
	Trends    []domain.DailyCount
	Quality   domain.QualityStats
	Campaigns []domain.CampaignStats
}

// Dashboard aggregates funnel, source, trend, quality and campaign stats
// over the last `days` days.
func (s *Service) Dashboard(ctx context.Context, days int) (DashboardStats, error) {
	since, days := rangeStart(days)

	funnel, err := s.repo.AggregateFunnel(ctx, since)
	if err != nil {
		return DashboardStats{}, apperr.Internal("leads.dashboard", err)
	}
	sources, err := s.repo.AggregateSources(ctx, since, sourceLimit)
	if err != nil {
		return DashboardStats{}, apperr.Internal("leads.dashboard", err)
	}
	trends, err := s.repo.AggregateDailyTrend(ctx, since, trendLimit)
	if err != nil {
		return DashboardStats{}, apperr.Internal("leads.dashboard", err)
	}
	quality, err := s.repo.AggregateQuality(ctx, since)
	if err != nil {
		return DashboardStats{}, apperr.Internal("leads.dashboard", err)
	}
	campaigns, err := s.repo.AggregateCampaigns(ctx, since, campaignLimit)
	if err != nil {
		return DashboardStats{}, apperr.Internal("leads.dashboard", err)
	}

	return DashboardStats{
		Days:      days,
		Funnel:    funnel,
		Sources:   sources,
		Trends:    trends,
		Quality:   quality,
		Campaigns: campaigns,
	}, nil
}

// SourceBreakdown aggregates per-channel stats over the last `days` days.
func (s *Service) SourceBreakdown(ctx context.Context, days int) ([]domain.SourceStats, error) {
	since, _ := rangeStart(days)
	stats, err := s.repo.AggregateSources(ctx, since, sourceLimit)
	if err != nil {
		return nil, apperr.Internal("leads.sources", err)
	}
	return stats, nil
}

// ConversionFunnel aggregates cumulative pipeline-stage counts over the last
// `days` days.
func (s *Service) ConversionFunnel(ctx context.Context, days int) (domain.FunnelStats, error) {
	since, _ := rangeStart(days)
	funnel, err := s.repo.AggregateFunnel(ctx, since)
	if err != nil {
		return domain.FunnelStats{}, apperr.Internal("leads.funnel", err)
	}
	return funnel, nil
}

// LeadQuality aggregates score-band counts over the last `days` days.
func (s *Service) LeadQuality(ctx context.Context, days int) (domain.QualityStats, error) {
	since, _ := rangeStart(days)
	quality, err := s.repo.AggregateQuality(ctx, since)
	if err != nil {
		return domain.QualityStats{}, apperr.Internal("leads.quality", err)
	}
	return quality, nil
}

// rangeStart clamps the requested range and returns its start time plus the
// effective day count.
func rangeStart(days int) (time.Time, int) {
	if days <= 0 || days > maxRangeDays {
		days = defaultRangeDays
	}
	return time.Now().UTC().AddDate(0, 0, -days), days
}
