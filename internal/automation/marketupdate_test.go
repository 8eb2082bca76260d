package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"realty_leads_backend/internal/leads/domain"

	"github.com/google/uuid"
)

func TestSendMarketUpdateBlastTracksOnlyDeliveredMessages(t *testing.T) {
	delivered := domain.Lead{ID: uuid.New(), Phone: strPtr("+13135551234")}
	failing := domain.Lead{ID: uuid.New(), Phone: strPtr("+13135555678")}

	store := newFakeStore()
	store.cohort = []domain.Lead{delivered, failing}
	notifier := newFakeNotifier()
	notifier.marketErr[failing.ID] = errors.New("carrier rejected")
	e := newTestEngine(store, notifier, &fakeSocial{})

	if err := e.sendMarketUpdateBlast(context.Background()); err != nil {
		t.Fatalf("sendMarketUpdateBlast: %v", err)
	}

	tracked := store.trackedEvents(domain.EventMarketUpdateSMSSent)
	if len(tracked) != 1 || tracked[0] != delivered.ID {
		t.Fatalf("tracked = %v, want only %s", tracked, delivered.ID)
	}
}

func TestSendMarketUpdateBlastStopsOnCancel(t *testing.T) {
	store := newFakeStore()
	store.cohort = []domain.Lead{
		{ID: uuid.New(), Phone: strPtr("+13135551111")},
		{ID: uuid.New(), Phone: strPtr("+13135552222")},
	}
	notifier := newFakeNotifier()
	e := newTestEngine(store, notifier, &fakeSocial{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := e.sendMarketUpdateBlast(ctx); err != nil {
		t.Fatalf("sendMarketUpdateBlast: %v", err)
	}
	if len(notifier.market) != 0 {
		t.Fatalf("sent %d messages on a cancelled context, want 0", len(notifier.market))
	}
}

func TestPostSocialMarketUpdate(t *testing.T) {
	social := &fakeSocial{}
	e := newTestEngine(newFakeStore(), newFakeNotifier(), social)

	if err := e.postSocialMarketUpdate(context.Background()); err != nil {
		t.Fatalf("postSocialMarketUpdate: %v", err)
	}
	if len(social.messages) != 1 || social.messages[0] == "" {
		t.Fatalf("posted messages = %v, want one non-empty message", social.messages)
	}
}

func TestPostSocialMarketUpdatePropagatesErrors(t *testing.T) {
	social := &fakeSocial{err: errors.New("webhook 502")}
	e := newTestEngine(newFakeStore(), newFakeNotifier(), social)

	if err := e.postSocialMarketUpdate(context.Background()); err == nil {
		t.Fatalf("expected webhook error to propagate")
	}
}

func TestMarketUpdateMessageRotatesByWeek(t *testing.T) {
	weekOne := marketUpdateMessage(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	weekTwo := marketUpdateMessage(time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC))
	if weekOne == weekTwo {
		t.Fatalf("consecutive weeks posted identical copy")
	}
	// same week always picks the same message
	again := marketUpdateMessage(time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC))
	if weekOne != again {
		t.Fatalf("same week picked different copy")
	}
}
