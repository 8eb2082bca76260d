// Package repository implements the lead store on Postgres.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"realty_leads_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("lead not found")
	ErrDuplicateEmail = errors.New("lead with this email already exists")
)

const leadColumns = `
	id, first_name, last_name, email, phone, address, property_type,
	timeframe, comments, source, utm_source, utm_medium, utm_campaign,
	page_url, referrer, score, status, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a new lead and returns it with store-assigned fields filled in.
func (r *Repository) Insert(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			first_name, last_name, email, phone, address, property_type,
			timeframe, comments, source, utm_source, utm_medium, utm_campaign,
			page_url, referrer, score, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+leadColumns,
		lead.FirstName, lead.LastName, lead.Email, lead.Phone, lead.Address,
		lead.PropertyType, lead.Timeframe, lead.Comments, lead.Source,
		lead.UTMSource, lead.UTMMedium, lead.UTMCampaign, lead.PageURL,
		lead.Referrer, lead.Score, lead.Status,
	)

	created, err := scanLead(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Lead{}, ErrDuplicateEmail
		}
		return domain.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return created, nil
}

// GetByID fetches a single lead.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, ErrNotFound
		}
		return domain.Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

// ListRecent returns the newest leads, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent leads: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

// ListByStatusAndAge returns leads with the given status created strictly
// between now-maxAge and now-minAge, highest score first. This window is the
// nurturing idempotency mechanism: once a lead's status flips it never
// re-enters the result set.
func (r *Repository) ListByStatusAndAge(ctx context.Context, status string, minAge, maxAge time.Duration, limit int) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE status = $1
		  AND created_at > NOW() - $2::interval
		  AND created_at < NOW() - $3::interval
		ORDER BY score DESC
		LIMIT $4
	`, status, durationInterval(maxAge), durationInterval(minAge), limit)
	if err != nil {
		return nil, fmt.Errorf("list leads by status and age: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

// ListHotRecent returns leads at or above minScore with the given status
// created within maxAge, ordered by score then recency.
func (r *Repository) ListHotRecent(ctx context.Context, minScore int, status string, maxAge time.Duration) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE score >= $1
		  AND status = $2
		  AND created_at > NOW() - $3::interval
		ORDER BY score DESC, created_at DESC
	`, minScore, status, durationInterval(maxAge))
	if err != nil {
		return nil, fmt.Errorf("list hot recent leads: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

// ListMarketUpdateCohort returns contactable leads for the weekly SMS blast:
// a phone number on file, not closed, created within maxAge.
func (r *Repository) ListMarketUpdateCohort(ctx context.Context, maxAge time.Duration, limit int) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE phone IS NOT NULL
		  AND status <> $1
		  AND created_at > NOW() - $2::interval
		ORDER BY created_at DESC
		LIMIT $3
	`, domain.StatusClosed, durationInterval(maxAge), limit)
	if err != nil {
		return nil, fmt.Errorf("list market update cohort: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

// UpdateParams carries the mutable lead fields for a partial update. Nil
// fields are left untouched.
type UpdateParams struct {
	Status   *string
	Score    *int
	Comments *string
}

// Update applies a partial update and returns the updated lead. updated_at is
// bumped even when every field is nil.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads SET
			status = COALESCE($1, status),
			score = COALESCE($2, score),
			comments = COALESCE($3, comments),
			updated_at = NOW()
		WHERE id = $4
		RETURNING `+leadColumns,
		p.Status, p.Score, p.Comments, id,
	)

	updated, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, ErrNotFound
		}
		return domain.Lead{}, fmt.Errorf("update lead: %w", err)
	}
	return updated, nil
}

// UpdateStatus sets the lead status and bumps updated_at. Setting a status
// the lead already has is a harmless no-op at the row level.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendTrackingEvent writes one append-only audit record for a lead.
func (r *Repository) AppendTrackingEvent(ctx context.Context, leadID uuid.UUID, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal tracking payload: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO lead_tracking (lead_id, event, data)
		VALUES ($1, $2, $3)
	`, leadID, event, data)
	if err != nil {
		return fmt.Errorf("append tracking event: %w", err)
	}
	return nil
}

// ListTrackingEvents returns a lead's audit trail, oldest first.
func (r *Repository) ListTrackingEvents(ctx context.Context, leadID uuid.UUID) ([]domain.TrackingEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, event, data, created_at
		FROM lead_tracking
		WHERE lead_id = $1
		ORDER BY created_at ASC
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list tracking events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.TrackingEvent, 0)
	for rows.Next() {
		var ev domain.TrackingEvent
		if err := rows.Scan(&ev.ID, &ev.LeadID, &ev.Event, &ev.Data, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// AggregateDailyStats summarizes leads created on the given calendar day (UTC).
// Every field is zero when no leads matched.
func (r *Repository) AggregateDailyStats(ctx context.Context, day time.Time) (domain.DailyStats, error) {
	day = day.UTC().Truncate(24 * time.Hour)

	row := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(AVG(score), 0),
			COUNT(*) FILTER (WHERE score >= 80),
			COUNT(*) FILTER (WHERE score >= 60 AND score < 80),
			COUNT(*) FILTER (WHERE timeframe = 'immediately')
		FROM leads
		WHERE created_at >= $1 AND created_at < $2
	`, day, day.Add(24*time.Hour))

	stats := domain.DailyStats{Date: day}
	if err := row.Scan(&stats.TotalLeads, &stats.AverageScore, &stats.HotLeads, &stats.WarmLeads, &stats.UrgentTimeframeLeads); err != nil {
		return domain.DailyStats{}, fmt.Errorf("aggregate daily stats: %w", err)
	}
	return stats, nil
}

func durationInterval(d time.Duration) string {
	return fmt.Sprintf("%d seconds", int64(d.Seconds()))
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.Phone, &l.Address,
		&l.PropertyType, &l.Timeframe, &l.Comments, &l.Source, &l.UTMSource,
		&l.UTMMedium, &l.UTMCampaign, &l.PageURL, &l.Referrer, &l.Score,
		&l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func collectLeads(rows pgx.Rows) ([]domain.Lead, error) {
	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}
