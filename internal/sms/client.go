// Package sms sends text messages through the Twilio Messages API.
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"realty_leads_backend/platform/config"
	"realty_leads_backend/platform/logger"
	"realty_leads_backend/platform/phone"

	"golang.org/x/time/rate"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// Client talks to the Twilio REST API. A nil *Client is valid and drops every
// message, so callers don't need to branch on whether SMS is configured.
type Client struct {
	accountSID          string
	authToken           string
	fromNumber          string
	messagingServiceSID string
	baseURL             string
	http                *http.Client
	limiter             *rate.Limiter
	log                 *logger.Logger
}

// NewClient returns a Twilio client, or nil when credentials are missing.
// Bulk sends are paced at one message per second so a market-update blast
// cannot saturate the process or trip carrier limits.
func NewClient(cfg config.SMSConfig, log *logger.Logger) *Client {
	if !cfg.IsSMSEnabled() {
		return nil
	}

	return &Client{
		accountSID:          cfg.GetTwilioAccountSID(),
		authToken:           cfg.GetTwilioAuthToken(),
		fromNumber:          cfg.GetTwilioFromNumber(),
		messagingServiceSID: cfg.GetTwilioMessagingServiceSID(),
		baseURL:             twilioAPIBase,
		http:                &http.Client{Timeout: 10 * time.Second},
		limiter:             rate.NewLimiter(rate.Every(time.Second), 5),
		log:                 log,
	}
}

// SendMessage sends one SMS. The phone number is normalized to E.164 first.
func (c *Client) SendMessage(ctx context.Context, phoneNumber string, message string) error {
	if c == nil {
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("To", phone.NormalizeE164(phoneNumber))
	form.Set("Body", message)
	if c.messagingServiceSID != "" {
		form.Set("MessagingServiceSid", c.messagingServiceSID)
	} else {
		form.Set("From", c.fromNumber)
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("sms sent", "to", phone.NormalizeE164(phoneNumber))
	return nil
}
