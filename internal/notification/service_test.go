package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"realty_leads_backend/internal/events"
	"realty_leads_backend/internal/leads/domain"
	"realty_leads_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeEmailSender struct {
	newLead []uuid.UUID
	urgent  []uuid.UUID
	welcome []uuid.UUID
	err     error
}

func (f *fakeEmailSender) SendNewLeadNotification(_ context.Context, lead domain.Lead) error {
	if f.err != nil {
		return f.err
	}
	f.newLead = append(f.newLead, lead.ID)
	return nil
}

func (f *fakeEmailSender) SendUrgentLeadNotification(_ context.Context, lead domain.Lead) error {
	if f.err != nil {
		return f.err
	}
	f.urgent = append(f.urgent, lead.ID)
	return nil
}

func (f *fakeEmailSender) SendWelcomeEmail(_ context.Context, lead domain.Lead) error {
	if f.err != nil {
		return f.err
	}
	f.welcome = append(f.welcome, lead.ID)
	return nil
}

func TestSendWelcomeDeliversEmail(t *testing.T) {
	sender := &fakeEmailSender{}
	svc := NewService(sender, nil, logger.New("development"))

	lead := domain.Lead{ID: uuid.New(), FirstName: "Maria", Email: "maria@example.com"}
	svc.SendWelcome(context.Background(), lead)

	if len(sender.welcome) != 1 || sender.welcome[0] != lead.ID {
		t.Fatalf("welcome emails = %v, want only %s", sender.welcome, lead.ID)
	}
}

func TestNotifyNewLeadSwallowsSenderErrors(t *testing.T) {
	sender := &fakeEmailSender{err: errors.New("smtp down")}
	svc := NewService(sender, nil, logger.New("development"))

	// must not panic or propagate
	svc.NotifyNewLead(context.Background(), domain.Lead{ID: uuid.New()})
	svc.SendWelcome(context.Background(), domain.Lead{ID: uuid.New()})
}

func TestSendUrgentAlertPropagatesErrors(t *testing.T) {
	sender := &fakeEmailSender{err: errors.New("smtp down")}
	svc := NewService(sender, nil, logger.New("development"))

	if err := svc.SendUrgentAlert(context.Background(), domain.Lead{ID: uuid.New()}); err == nil {
		t.Fatalf("expected sender error to propagate")
	}
}

func TestWelcomeSMSBodyMentionsLead(t *testing.T) {
	body := welcomeSMSBody(domain.Lead{FirstName: "Maria", Address: "123 Main St, Allen Park"})
	if !strings.Contains(body, "Maria") || !strings.Contains(body, "123 Main St") {
		t.Fatalf("body missing lead details: %q", body)
	}
	if !strings.Contains(body, "STOP") {
		t.Fatalf("body missing opt-out notice: %q", body)
	}
}

func TestModuleSendsWelcomeOnLeadCaptured(t *testing.T) {
	sender := &fakeEmailSender{}
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	NewModule(bus, sender, nil, log)

	hot := events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		FirstName: "Maria",
		Email:     "maria@example.com",
		Score:     85,
	}
	if err := bus.PublishSync(context.Background(), hot); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(sender.welcome) != 1 {
		t.Fatalf("welcome emails = %d, want 1", len(sender.welcome))
	}
	// capture never alerts the admin, even for a hot lead; that is the
	// automation sweeps' job
	if len(sender.newLead) != 0 {
		t.Fatalf("admin notifications = %d, want 0", len(sender.newLead))
	}
	if len(sender.urgent) != 0 {
		t.Fatalf("urgent notifications = %d, want 0", len(sender.urgent))
	}
}
