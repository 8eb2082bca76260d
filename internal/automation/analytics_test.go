package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"realty_leads_backend/internal/leads/domain"
)

func TestAggregateDailyAnalyticsUsesYesterday(t *testing.T) {
	store := newFakeStore()
	store.stats = domain.DailyStats{TotalLeads: 12, AverageScore: 54.5, HotLeads: 2}
	e := newTestEngine(store, newFakeNotifier(), &fakeSocial{})

	if err := e.aggregateDailyAnalytics(context.Background()); err != nil {
		t.Fatalf("aggregateDailyAnalytics: %v", err)
	}

	wantDay := time.Now().UTC().AddDate(0, 0, -1)
	if store.statsDay.Year() != wantDay.Year() || store.statsDay.YearDay() != wantDay.YearDay() {
		t.Fatalf("aggregated %v, want yesterday %v", store.statsDay, wantDay)
	}
}

func TestAggregateDailyAnalyticsPropagatesStoreErrors(t *testing.T) {
	store := newFakeStore()
	store.statsErr = errors.New("db gone")
	e := newTestEngine(store, newFakeNotifier(), &fakeSocial{})

	if err := e.aggregateDailyAnalytics(context.Background()); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}
