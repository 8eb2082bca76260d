package repository

import (
	"context"
	"fmt"
	"time"

	"realty_leads_backend/internal/leads/domain"
)

// AggregateFunnel counts leads per pipeline stage since the given time.
// Stage membership is cumulative so the funnel never widens downstream: a
// closed lead also counts as contacted, qualified, appointment and client.
func (r *Repository) AggregateFunnel(ctx context.Context, since time.Time) (domain.FunnelStats, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ('contacted', 'qualified', 'appointment', 'client', 'closed')),
			COUNT(*) FILTER (WHERE status IN ('qualified', 'appointment', 'client', 'closed')),
			COUNT(*) FILTER (WHERE status IN ('appointment', 'client', 'closed')),
			COUNT(*) FILTER (WHERE status IN ('client', 'closed')),
			COUNT(*) FILTER (WHERE status = 'closed')
		FROM leads
		WHERE created_at >= $1
	`, since)

	var f domain.FunnelStats
	if err := row.Scan(&f.TotalLeads, &f.Contacted, &f.Qualified, &f.Appointments, &f.Clients, &f.Closed); err != nil {
		return domain.FunnelStats{}, fmt.Errorf("aggregate funnel: %w", err)
	}
	return f, nil
}

// AggregateSources summarizes lead volume and quality per acquisition
// channel since the given time, busiest channel first.
func (r *Repository) AggregateSources(ctx context.Context, since time.Time, limit int) ([]domain.SourceStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			COALESCE(NULLIF(source, ''), 'unknown'),
			COUNT(*),
			COALESCE(AVG(score), 0),
			COUNT(*) FILTER (WHERE status = 'qualified')
		FROM leads
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 2 DESC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("aggregate sources: %w", err)
	}
	defer rows.Close()

	stats := make([]domain.SourceStats, 0)
	for rows.Next() {
		var s domain.SourceStats
		if err := rows.Scan(&s.Source, &s.TotalLeads, &s.AverageScore, &s.QualifiedLeads); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// AggregateQuality buckets leads by score band since the given time.
// Bands match the tier thresholds: high >= 80, medium 60-79, low < 60.
func (r *Repository) AggregateQuality(ctx context.Context, since time.Time) (domain.QualityStats, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(AVG(score), 0),
			COUNT(*) FILTER (WHERE score >= 80),
			COUNT(*) FILTER (WHERE score >= 60 AND score < 80),
			COUNT(*) FILTER (WHERE score < 60)
		FROM leads
		WHERE created_at >= $1
	`, since)

	var q domain.QualityStats
	if err := row.Scan(&q.TotalLeads, &q.AverageScore, &q.High, &q.Medium, &q.Low); err != nil {
		return domain.QualityStats{}, fmt.Errorf("aggregate quality: %w", err)
	}
	return q, nil
}

// AggregateDailyTrend returns per-day lead volume since the given time,
// newest day first.
func (r *Repository) AggregateDailyTrend(ctx context.Context, since time.Time, limit int) ([]domain.DailyCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT created_at::date, COUNT(*)
		FROM leads
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1 DESC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily trend: %w", err)
	}
	defer rows.Close()

	trend := make([]domain.DailyCount, 0)
	for rows.Next() {
		var d domain.DailyCount
		if err := rows.Scan(&d.Date, &d.Leads); err != nil {
			return nil, err
		}
		trend = append(trend, d)
	}
	return trend, rows.Err()
}

// AggregateCampaigns summarizes tagged UTM campaigns since the given time,
// busiest campaign first. Untagged leads are excluded.
func (r *Repository) AggregateCampaigns(ctx context.Context, since time.Time, limit int) ([]domain.CampaignStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT utm_campaign, COUNT(*), COALESCE(AVG(score), 0)
		FROM leads
		WHERE created_at >= $1 AND utm_campaign IS NOT NULL
		GROUP BY 1
		ORDER BY 2 DESC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("aggregate campaigns: %w", err)
	}
	defer rows.Close()

	stats := make([]domain.CampaignStats, 0)
	for rows.Next() {
		var c domain.CampaignStats
		if err := rows.Scan(&c.Campaign, &c.TotalLeads, &c.AverageScore); err != nil {
			return nil, err
		}
		stats = append(stats, c)
	}
	return stats, rows.Err()
}
