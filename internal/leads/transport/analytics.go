package transport

import (
	"math"

	"realty_leads_backend/internal/leads/domain"
)

// ConversionRates are the stage-to-stage percentages of the pipeline funnel.
// Each rate is relative to the previous stage; OverallConversion is closed
// over total.
type ConversionRates struct {
	ContactedRate     int `json:"contactedRate"`
	QualifiedRate     int `json:"qualifiedRate"`
	AppointmentRate   int `json:"appointmentRate"`
	ClientRate        int `json:"clientRate"`
	ClosedRate        int `json:"closedRate"`
	OverallConversion int `json:"overallConversion"`
}

// FunnelResponse is the conversion-funnel report.
type FunnelResponse struct {
	Funnel          domain.FunnelStats `json:"funnel"`
	ConversionRates ConversionRates    `json:"conversionRates"`
}

// NewFunnelResponse derives the stage-to-stage rates from raw funnel counts.
// A rate with an empty previous stage is 0, not a division error.
func NewFunnelResponse(f domain.FunnelStats) FunnelResponse {
	return FunnelResponse{
		Funnel: f,
		ConversionRates: ConversionRates{
			ContactedRate:     percent(f.Contacted, f.TotalLeads),
			QualifiedRate:     percent(f.Qualified, f.Contacted),
			AppointmentRate:   percent(f.Appointments, f.Qualified),
			ClientRate:        percent(f.Clients, f.Appointments),
			ClosedRate:        percent(f.Closed, f.Clients),
			OverallConversion: percent(f.Closed, f.TotalLeads),
		},
	}
}

// SourceResponse is one acquisition channel in the source breakdown.
type SourceResponse struct {
	Source         string `json:"source"`
	TotalLeads     int    `json:"totalLeads"`
	AverageScore   int    `json:"averageScore"`
	QualifiedLeads int    `json:"qualifiedLeads"`
	ConversionRate int    `json:"conversionRate"`
}

// FromSourceStats converts the per-source aggregates, deriving each
// channel's qualified-over-total conversion rate.
func FromSourceStats(stats []domain.SourceStats) []SourceResponse {
	out := make([]SourceResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, SourceResponse{
			Source:         s.Source,
			TotalLeads:     s.TotalLeads,
			AverageScore:   roundScore(s.AverageScore),
			QualifiedLeads: s.QualifiedLeads,
			ConversionRate: percent(s.QualifiedLeads, s.TotalLeads),
		})
	}
	return out
}

// QualityResponse is the lead-quality report: score-band counts plus their
// share of the total.
type QualityResponse struct {
	TotalLeads   int                 `json:"totalLeads"`
	AverageScore int                 `json:"averageScore"`
	Distribution QualityDistribution `json:"distribution"`
	Percentages  QualityDistribution `json:"percentages"`
}

// QualityDistribution holds one number per score band.
type QualityDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// NewQualityResponse derives the band percentages from raw band counts.
func NewQualityResponse(q domain.QualityStats) QualityResponse {
	return QualityResponse{
		TotalLeads:   q.TotalLeads,
		AverageScore: roundScore(q.AverageScore),
		Distribution: QualityDistribution{High: q.High, Medium: q.Medium, Low: q.Low},
		Percentages: QualityDistribution{
			High:   percent(q.High, q.TotalLeads),
			Medium: percent(q.Medium, q.TotalLeads),
			Low:    percent(q.Low, q.TotalLeads),
		},
	}
}

// DashboardResponse is the combined analytics dashboard payload.
type DashboardResponse struct {
	DateRangeDays     int                    `json:"dateRangeDays"`
	Funnel            domain.FunnelStats     `json:"funnel"`
	OverallConversion int                    `json:"overallConversion"`
	Sources           []SourceResponse       `json:"sources"`
	Trends            []domain.DailyCount    `json:"trends"`
	Quality           QualityResponse        `json:"quality"`
	Campaigns         []domain.CampaignStats `json:"campaigns"`
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func roundScore(avg float64) int {
	return int(math.Round(avg))
}
