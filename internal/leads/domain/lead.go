// Package domain holds the lead entities shared by the capture API,
// the repository and the automation processors.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lead status tags. Status is intentionally a free-form string: the capture
// layer and the automation processors may set any value, matching the
// permissive model of the upstream CRM integrations. The constants below are
// the values this codebase writes.
const (
	StatusNew         = "new"
	StatusContacted   = "contacted"
	StatusQualified   = "qualified"
	StatusAppointment = "appointment"
	StatusClient      = "client"
	StatusClosed      = "closed"
)

// Tracking event tags written by this codebase. The tracking log is
// append-only and doubles as the automation audit trail.
const (
	EventLeadCreated            = "lead_created"
	EventStatusUpdated          = "status_updated"
	EventAutomationProcessed    = "automation_processed"
	EventUrgentNotificationSent = "urgent_notification_sent"
	EventMarketUpdateSMSSent    = "market_update_sms_sent"
)

// Lead is one real-world prospect captured from a valuation request form.
type Lead struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	Address      string
	PropertyType string
	Timeframe    string
	Comments     string
	Source       string
	UTMSource    *string
	UTMMedium    *string
	UTMCampaign  *string
	PageURL      *string
	Referrer     *string
	Score        int
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns the lead's display name.
func (l Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}

// PhoneNumber returns the phone number or "" when none was provided.
func (l Lead) PhoneNumber() string {
	if l.Phone == nil {
		return ""
	}
	return *l.Phone
}

// TrackingEvent is one append-only audit record for a lead.
type TrackingEvent struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	Event     string
	Data      json.RawMessage
	CreatedAt time.Time
}

// DailyStats summarizes the leads created on one calendar day.
// All fields are zero when no leads matched.
type DailyStats struct {
	Date                 time.Time `json:"date"`
	TotalLeads           int       `json:"totalLeads"`
	AverageScore         float64   `json:"averageScore"`
	HotLeads             int       `json:"hotLeads"`
	WarmLeads            int       `json:"warmLeads"`
	UrgentTimeframeLeads int       `json:"urgentTimeframeLeads"`
}

// FunnelStats counts leads per pipeline stage over a date range. Stages are
// cumulative: a closed lead counts in every earlier stage too.
type FunnelStats struct {
	TotalLeads   int `json:"totalLeads"`
	Contacted    int `json:"contacted"`
	Qualified    int `json:"qualified"`
	Appointments int `json:"appointments"`
	Clients      int `json:"clients"`
	Closed       int `json:"closed"`
}

// SourceStats summarizes one acquisition channel over a date range.
type SourceStats struct {
	Source         string  `json:"source"`
	TotalLeads     int     `json:"totalLeads"`
	AverageScore   float64 `json:"averageScore"`
	QualifiedLeads int     `json:"qualifiedLeads"`
}

// QualityStats buckets leads by score band over a date range.
type QualityStats struct {
	TotalLeads   int     `json:"totalLeads"`
	AverageScore float64 `json:"averageScore"`
	High         int     `json:"high"`
	Medium       int     `json:"medium"`
	Low          int     `json:"low"`
}

// DailyCount is the lead volume of one calendar day.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Leads int       `json:"leads"`
}

// CampaignStats summarizes one UTM campaign over a date range.
type CampaignStats struct {
	Campaign     string  `json:"campaign"`
	TotalLeads   int     `json:"totalLeads"`
	AverageScore float64 `json:"averageScore"`
}
