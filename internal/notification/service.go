// Package notification fans lead events out to email and SMS. It is the only
// place that decides which channels a given alert goes to.
package notification

import (
	"context"

	"realty_leads_backend/internal/email"
	"realty_leads_backend/internal/leads/domain"
	"realty_leads_backend/internal/sms"
	"realty_leads_backend/platform/logger"
)

// Service sends lead notifications over email and SMS.
type Service struct {
	email email.Sender
	sms   *sms.Client
	log   *logger.Logger
}

func NewService(emailSender email.Sender, smsClient *sms.Client, log *logger.Logger) *Service {
	return &Service{
		email: emailSender,
		sms:   smsClient,
		log:   log.WithComponent("notification"),
	}
}

// NotifyNewLead alerts the admin inbox about a lead worth following up on.
// Delivery is best-effort: a failed send is logged, never propagated, so lead
// processing is not blocked by a mail outage.
func (s *Service) NotifyNewLead(ctx context.Context, lead domain.Lead) {
	if err := s.email.SendNewLeadNotification(ctx, lead); err != nil {
		s.log.Error("new lead notification failed", "lead_id", lead.ID, "error", err)
	}
}

// SendWelcome thanks the lead on every channel they gave us. Best-effort.
func (s *Service) SendWelcome(ctx context.Context, lead domain.Lead) {
	if err := s.email.SendWelcomeEmail(ctx, lead); err != nil {
		s.log.Error("welcome email failed", "lead_id", lead.ID, "error", err)
	}

	if phone := lead.PhoneNumber(); phone != "" {
		if err := s.sms.SendMessage(ctx, phone, welcomeSMSBody(lead)); err != nil {
			s.log.Error("welcome sms failed", "lead_id", lead.ID, "error", err)
		}
	}
}

// SendFollowUpSMS texts a lead whose request has gone unanswered for a while.
// The error is returned so the caller can decide how to react.
func (s *Service) SendFollowUpSMS(ctx context.Context, lead domain.Lead) error {
	return s.sms.SendMessage(ctx, lead.PhoneNumber(), followUpSMSBody(lead))
}

// SendUrgentAlert notifies the admin that a hot lead needs an immediate call.
// The error is returned so the caller can decide whether to record the alert.
func (s *Service) SendUrgentAlert(ctx context.Context, lead domain.Lead) error {
	return s.email.SendUrgentLeadNotification(ctx, lead)
}

// SendMarketUpdateSMS texts one lead the weekly market update. The error is
// returned so the caller only records delivery for messages that went out.
func (s *Service) SendMarketUpdateSMS(ctx context.Context, lead domain.Lead, message string) error {
	return s.sms.SendMessage(ctx, lead.PhoneNumber(), message)
}
