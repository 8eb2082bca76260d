package notification

import (
	"context"

	"realty_leads_backend/internal/email"
	"realty_leads_backend/internal/events"
	"realty_leads_backend/internal/leads/domain"
	"realty_leads_backend/internal/sms"
	"realty_leads_backend/platform/logger"
)

// Module wires the notification service to the event bus.
type Module struct {
	Service *Service
}

// NewModule builds the notification service and subscribes it to lead events.
// Capture only triggers the consumer welcome; admin alerts are the automation
// sweeps' job, so a hot lead is not alerted three times over.
func NewModule(bus events.Bus, emailSender email.Sender, smsClient *sms.Client, log *logger.Logger) *Module {
	svc := NewService(emailSender, smsClient, log)

	bus.Subscribe(events.LeadCaptured{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		captured, ok := e.(events.LeadCaptured)
		if !ok {
			return nil
		}
		svc.SendWelcome(ctx, leadFromCaptured(captured))
		return nil
	}))

	return &Module{Service: svc}
}

func leadFromCaptured(e events.LeadCaptured) domain.Lead {
	lead := domain.Lead{
		ID:        e.LeadID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Address:   e.Address,
		Score:     e.Score,
	}
	if e.Phone != "" {
		phone := e.Phone
		lead.Phone = &phone
	}
	return lead
}
