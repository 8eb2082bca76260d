// Package transport defines the request and response DTOs for the lead
// capture API.
package transport

import (
	"encoding/json"
	"time"

	"realty_leads_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// CreateLeadRequest is the valuation-request form payload. Only the contact
// essentials are required; everything else defaults permissively because the
// scoring engine tolerates missing attributes.
type CreateLeadRequest struct {
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Phone        string `json:"phone" validate:"omitempty,max=32"`
	Address      string `json:"address" validate:"required,max=255"`
	PropertyType string `json:"propertyType" validate:"max=50"`
	Timeframe    string `json:"timeframe" validate:"max=50"`
	Comments     string `json:"comments" validate:"max=2000"`
	Source       string `json:"source" validate:"max=50"`
	UTMSource    string `json:"utmSource" validate:"max=255"`
	UTMMedium    string `json:"utmMedium" validate:"max=255"`
	UTMCampaign  string `json:"utmCampaign" validate:"max=255"`
	PageURL      string `json:"pageUrl" validate:"max=2048"`
	Referrer     string `json:"referrer" validate:"max=2048"`
}

// UpdateLeadRequest is the agent-facing partial update payload. Omitted
// fields are left untouched; status stays free-form to match the permissive
// status model.
type UpdateLeadRequest struct {
	Status   *string `json:"status" validate:"omitempty,min=1,max=50"`
	Score    *int    `json:"score" validate:"omitempty,min=0,max=100"`
	Comments *string `json:"comments" validate:"omitempty,max=2000"`
}

// Empty reports whether the request would change nothing.
func (r UpdateLeadRequest) Empty() bool {
	return r.Status == nil && r.Score == nil && r.Comments == nil
}

// CreateLeadResponse tells the capture form what the engine thought of the
// lead.
type CreateLeadResponse struct {
	ID                 uuid.UUID `json:"id"`
	Score              int       `json:"score"`
	Tier               string    `json:"tier"`
	Priority           string    `json:"priority"`
	RecommendedActions []string  `json:"recommendedActions"`
}

// LeadResponse is the full lead representation for the read endpoints.
type LeadResponse struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Address      string    `json:"address"`
	PropertyType string    `json:"propertyType,omitempty"`
	Timeframe    string    `json:"timeframe,omitempty"`
	Comments     string    `json:"comments,omitempty"`
	Source       string    `json:"source,omitempty"`
	Score        int       `json:"score"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromLead converts a domain lead into its API representation.
func FromLead(l domain.Lead) LeadResponse {
	return LeadResponse{
		ID:           l.ID,
		FirstName:    l.FirstName,
		LastName:     l.LastName,
		Email:        l.Email,
		Phone:        l.Phone,
		Address:      l.Address,
		PropertyType: l.PropertyType,
		Timeframe:    l.Timeframe,
		Comments:     l.Comments,
		Source:       l.Source,
		Score:        l.Score,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// FromLeads converts a slice of domain leads.
func FromLeads(leads []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, FromLead(l))
	}
	return out
}

// TrackingEventResponse is one audit record in a lead's history.
type TrackingEventResponse struct {
	ID        uuid.UUID       `json:"id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// FromTrackingEvents converts a lead's audit trail.
func FromTrackingEvents(events []domain.TrackingEvent) []TrackingEventResponse {
	out := make([]TrackingEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, TrackingEventResponse{
			ID:        e.ID,
			Event:     e.Event,
			Data:      e.Data,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
