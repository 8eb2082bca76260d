// Package email sends transactional email over SMTP using go-mail.
package email

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"realty_leads_backend/internal/leads/domain"
	"realty_leads_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers the lead-related emails. All sends are best-effort from the
// caller's perspective; this package only reports the error.
type Sender interface {
	SendNewLeadNotification(ctx context.Context, lead domain.Lead) error
	SendUrgentLeadNotification(ctx context.Context, lead domain.Lead) error
	SendWelcomeEmail(ctx context.Context, lead domain.Lead) error
}

// NewSender returns an SMTP-backed sender, or a no-op sender when email is
// disabled or not configured.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return &SMTPSender{
		host:       cfg.GetSMTPHost(),
		port:       cfg.GetSMTPPort(),
		username:   cfg.GetSMTPUsername(),
		password:   cfg.GetSMTPPassword(),
		fromName:   cfg.GetEmailFromName(),
		fromEmail:  cfg.GetEmailFromAddress(),
		adminEmail: cfg.GetAdminEmail(),
	}
}

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host       string
	port       int
	username   string
	password   string
	fromName   string
	fromEmail  string
	adminEmail string
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendNewLeadNotification notifies the admin inbox about a high-value lead.
func (s *SMTPSender) SendNewLeadNotification(ctx context.Context, lead domain.Lead) error {
	if s.adminEmail == "" {
		return nil
	}
	content, err := renderEmailTemplate("new_lead.html", leadEmailData{
		baseEmailData: baseEmailData{
			Title:   "New lead",
			Heading: fmt.Sprintf("New lead: %s", lead.FullName()),
		},
		Lead: leadView(lead),
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectNewLeadFmt, lead.FullName(), lead.Score)
	return s.send(ctx, s.adminEmail, subject, content)
}

// SendUrgentLeadNotification notifies the admin inbox about a hot lead that
// needs a call right now.
func (s *SMTPSender) SendUrgentLeadNotification(ctx context.Context, lead domain.Lead) error {
	if s.adminEmail == "" {
		return nil
	}
	content, err := renderEmailTemplate("urgent_lead.html", leadEmailData{
		baseEmailData: baseEmailData{
			Title:   "Urgent lead",
			Heading: fmt.Sprintf("Hot lead waiting: %s", lead.FullName()),
		},
		Lead: leadView(lead),
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectUrgentLeadFmt, lead.FullName(), lead.Score)
	return s.send(ctx, s.adminEmail, subject, content)
}

// SendWelcomeEmail thanks the lead for their valuation request.
func (s *SMTPSender) SendWelcomeEmail(ctx context.Context, lead domain.Lead) error {
	if strings.TrimSpace(lead.Email) == "" {
		return nil
	}
	content, err := renderEmailTemplate("welcome.html", leadEmailData{
		baseEmailData: baseEmailData{
			Title:   "Thank you",
			Heading: fmt.Sprintf("Thank you for your request, %s!", lead.FirstName),
		},
		Lead: leadView(lead),
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectWelcomeFmt, lead.FirstName)
	return s.send(ctx, lead.Email, subject, content)
}

// NoopSender is used when email is not configured. It logs nothing and
// drops every message.
type NoopSender struct{}

func (NoopSender) SendNewLeadNotification(context.Context, domain.Lead) error    { return nil }
func (NoopSender) SendUrgentLeadNotification(context.Context, domain.Lead) error { return nil }
func (NoopSender) SendWelcomeEmail(context.Context, domain.Lead) error           { return nil }

var _ Sender = (*SMTPSender)(nil)
var _ Sender = NoopSender{}

func leadView(lead domain.Lead) leadData {
	return leadData{
		Name:         lead.FullName(),
		Email:        lead.Email,
		Phone:        lead.PhoneNumber(),
		Address:      lead.Address,
		PropertyType: lead.PropertyType,
		Timeframe:    lead.Timeframe,
		Comments:     lead.Comments,
		Score:        lead.Score,
	}
}
