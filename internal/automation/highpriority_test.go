package automation

import (
	"context"
	"errors"
	"testing"

	"realty_leads_backend/internal/leads/domain"

	"github.com/google/uuid"
)

func TestProcessHighPriorityLeadsAlertsAndTracks(t *testing.T) {
	lead := domain.Lead{ID: uuid.New(), Score: 92, Status: domain.StatusNew}

	store := newFakeStore()
	store.hot = []domain.Lead{lead}
	notifier := newFakeNotifier()
	e := newTestEngine(store, notifier, &fakeSocial{})

	if err := e.processHighPriorityLeads(context.Background()); err != nil {
		t.Fatalf("processHighPriorityLeads: %v", err)
	}

	if len(notifier.urgent) != 1 || notifier.urgent[0] != lead.ID {
		t.Fatalf("urgent alerts = %v, want only %s", notifier.urgent, lead.ID)
	}
	tracked := store.trackedEvents(domain.EventUrgentNotificationSent)
	if len(tracked) != 1 || tracked[0] != lead.ID {
		t.Fatalf("tracked = %v, want only %s", tracked, lead.ID)
	}
	// the high-priority sweep never touches lead status
	if len(store.statusUpdates) != 0 {
		t.Fatalf("status updates = %v, want none", store.statusUpdates)
	}
}

func TestProcessHighPriorityLeadsSkipsTrackingOnAlertFailure(t *testing.T) {
	failing := domain.Lead{ID: uuid.New(), Score: 90, Status: domain.StatusNew}
	healthy := domain.Lead{ID: uuid.New(), Score: 88, Status: domain.StatusNew}

	store := newFakeStore()
	store.hot = []domain.Lead{failing, healthy}
	notifier := newFakeNotifier()
	notifier.urgentErr[failing.ID] = errors.New("smtp timeout")
	e := newTestEngine(store, notifier, &fakeSocial{})

	if err := e.processHighPriorityLeads(context.Background()); err != nil {
		t.Fatalf("processHighPriorityLeads: %v", err)
	}

	tracked := store.trackedEvents(domain.EventUrgentNotificationSent)
	if len(tracked) != 1 || tracked[0] != healthy.ID {
		t.Fatalf("tracked = %v, want only %s", tracked, healthy.ID)
	}
}
