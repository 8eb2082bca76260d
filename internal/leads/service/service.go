// Package service implements the lead capture use cases on top of the
// repository, the scoring engine and the event bus.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"realty_leads_backend/internal/events"
	"realty_leads_backend/internal/leads/domain"
	"realty_leads_backend/internal/leads/repository"
	"realty_leads_backend/internal/leads/scoring"
	"realty_leads_backend/internal/leads/transport"
	"realty_leads_backend/platform/apperr"
	"realty_leads_backend/platform/logger"
	"realty_leads_backend/platform/phone"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		bus:  bus,
		log:  log.WithComponent("leads"),
	}
}

// CaptureResult is what the capture endpoint returns to the form.
type CaptureResult struct {
	Lead               domain.Lead
	Tier               string
	Priority           string
	RecommendedActions []string
}

// Capture scores and stores a new lead. The score is computed exactly once
// here; everything downstream reads the stored value.
func (s *Service) Capture(ctx context.Context, req transport.CreateLeadRequest) (CaptureResult, error) {
	var phonePtr *string
	if raw := strings.TrimSpace(req.Phone); raw != "" {
		normalized := phone.NormalizeE164(raw)
		phonePtr = &normalized
	}

	// Capture-layer defaults; the scoring tables key off these exact tags.
	timeframe := withDefault(req.Timeframe, "just-curious")
	propertyType := withDefault(req.PropertyType, "single-family")
	source := withDefault(req.Source, "website")

	input := scoring.Input{
		Timeframe:    timeframe,
		PropertyType: propertyType,
		Location:     req.Address,
		HasPhone:     phonePtr != nil,
		HasEmail:     strings.TrimSpace(req.Email) != "",
		Source:       source,
		UTMCampaign:  req.UTMCampaign,
		Comments:     req.Comments,
	}
	score := scoring.Score(input)

	lead := domain.Lead{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        phonePtr,
		Address:      strings.TrimSpace(req.Address),
		PropertyType: propertyType,
		Timeframe:    timeframe,
		Comments:     req.Comments,
		Source:       source,
		UTMSource:    optional(req.UTMSource),
		UTMMedium:    optional(req.UTMMedium),
		UTMCampaign:  optional(req.UTMCampaign),
		PageURL:      optional(req.PageURL),
		Referrer:     optional(req.Referrer),
		Score:        score,
		Status:       domain.StatusNew,
	}

	created, err := s.repo.Insert(ctx, lead)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return CaptureResult{}, apperr.Conflict("a lead with this email already exists")
		}
		return CaptureResult{}, apperr.Internal("leads.capture", err)
	}

	// The audit record and the event are best-effort: the lead is already
	// stored and the request must not fail after that point.
	if err := s.repo.AppendTrackingEvent(ctx, created.ID, domain.EventLeadCreated, map[string]any{
		"score":  created.Score,
		"source": created.Source,
	}); err != nil {
		s.log.Error("lead_created tracking failed", "lead_id", created.ID, "error", err)
	}

	s.bus.Publish(ctx, events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    created.ID,
		FirstName: created.FirstName,
		LastName:  created.LastName,
		Email:     created.Email,
		Phone:     created.PhoneNumber(),
		Address:   created.Address,
		Score:     created.Score,
		Tier:      scoring.Tier(created.Score),
	})

	s.log.Info("lead captured", "lead_id", created.ID, "score", created.Score)

	return CaptureResult{
		Lead:               created,
		Tier:               scoring.Tier(created.Score),
		Priority:           scoring.Priority(created.Score, created.Timeframe),
		RecommendedActions: scoring.RecommendedActions(created.Score, input),
	}, nil
}

// GetByID fetches one lead.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Internal("leads.get", err)
	}
	return lead, nil
}

// Update applies a partial status/score/comments update on behalf of an
// agent and appends a status_updated audit record. Like capture-time
// tracking, the audit write is best-effort once the row is updated.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (domain.Lead, error) {
	updated, err := s.repo.Update(ctx, id, repository.UpdateParams{
		Status:   req.Status,
		Score:    req.Score,
		Comments: req.Comments,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Internal("leads.update", err)
	}

	if err := s.repo.AppendTrackingEvent(ctx, updated.ID, domain.EventStatusUpdated, map[string]any{
		"status":   req.Status,
		"score":    req.Score,
		"comments": req.Comments,
	}); err != nil {
		s.log.Error("status_updated tracking failed", "lead_id", updated.ID, "error", err)
	}

	s.log.Info("lead updated", "lead_id", updated.ID, "status", updated.Status)
	return updated, nil
}

// ListRecent returns the newest leads.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]domain.Lead, error) {
	leads, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperr.Internal("leads.list", err)
	}
	return leads, nil
}

// TrackingHistory returns a lead's audit trail, oldest first.
func (s *Service) TrackingHistory(ctx context.Context, id uuid.UUID) ([]domain.TrackingEvent, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.repo.ListTrackingEvents(ctx, id)
	if err != nil {
		return nil, apperr.Internal("leads.tracking", err)
	}
	return events, nil
}

// DailyStats aggregates the leads captured on one UTC calendar day.
func (s *Service) DailyStats(ctx context.Context, day time.Time) (domain.DailyStats, error) {
	stats, err := s.repo.AggregateDailyStats(ctx, day)
	if err != nil {
		return domain.DailyStats{}, apperr.Internal("leads.daily_stats", err)
	}
	return stats, nil
}

func withDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
