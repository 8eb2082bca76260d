package transport

import (
	"testing"

	"realty_leads_backend/internal/leads/domain"
)

func TestNewFunnelResponseRates(t *testing.T) {
	resp := NewFunnelResponse(domain.FunnelStats{
		TotalLeads:   200,
		Contacted:    100,
		Qualified:    50,
		Appointments: 25,
		Clients:      10,
		Closed:       5,
	})

	rates := resp.ConversionRates
	if rates.ContactedRate != 50 {
		t.Fatalf("contacted rate = %d, want 50", rates.ContactedRate)
	}
	if rates.QualifiedRate != 50 {
		t.Fatalf("qualified rate = %d, want 50", rates.QualifiedRate)
	}
	if rates.AppointmentRate != 50 {
		t.Fatalf("appointment rate = %d, want 50", rates.AppointmentRate)
	}
	if rates.ClientRate != 40 {
		t.Fatalf("client rate = %d, want 40", rates.ClientRate)
	}
	if rates.ClosedRate != 50 {
		t.Fatalf("closed rate = %d, want 50", rates.ClosedRate)
	}
	// 5 of 200
	if rates.OverallConversion != 3 {
		t.Fatalf("overall conversion = %d, want 3", rates.OverallConversion)
	}
}

func TestNewFunnelResponseEmptyStagesYieldZeroRates(t *testing.T) {
	resp := NewFunnelResponse(domain.FunnelStats{})

	rates := resp.ConversionRates
	if rates != (ConversionRates{}) {
		t.Fatalf("empty funnel produced non-zero rates: %+v", rates)
	}
}

func TestFromSourceStatsDerivesConversion(t *testing.T) {
	out := FromSourceStats([]domain.SourceStats{
		{Source: "website", TotalLeads: 40, AverageScore: 61.4, QualifiedLeads: 10},
		{Source: "referral", TotalLeads: 0, AverageScore: 0, QualifiedLeads: 0},
	})

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ConversionRate != 25 {
		t.Fatalf("website conversion = %d, want 25", out[0].ConversionRate)
	}
	if out[0].AverageScore != 61 {
		t.Fatalf("website avg score = %d, want 61", out[0].AverageScore)
	}
	if out[1].ConversionRate != 0 {
		t.Fatalf("empty channel conversion = %d, want 0", out[1].ConversionRate)
	}
}

func TestNewQualityResponsePercentages(t *testing.T) {
	resp := NewQualityResponse(domain.QualityStats{
		TotalLeads:   10,
		AverageScore: 66.6,
		High:         2,
		Medium:       5,
		Low:          3,
	})

	if resp.AverageScore != 67 {
		t.Fatalf("average score = %d, want 67", resp.AverageScore)
	}
	want := QualityDistribution{High: 20, Medium: 50, Low: 30}
	if resp.Percentages != want {
		t.Fatalf("percentages = %+v, want %+v", resp.Percentages, want)
	}
	if resp.Distribution != (QualityDistribution{High: 2, Medium: 5, Low: 3}) {
		t.Fatalf("distribution = %+v", resp.Distribution)
	}
}
