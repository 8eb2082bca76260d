// Package social posts market updates to the configured social media webhook.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"realty_leads_backend/platform/config"
	"realty_leads_backend/platform/logger"
)

// Client posts to a social publishing webhook (the actual fan-out to the
// individual networks happens behind it). A nil *Client drops every post.
type Client struct {
	webhookURL string
	apiKey     string
	http       *http.Client
	log        *logger.Logger
}

type postRequest struct {
	Message string `json:"message"`
	Tags    string `json:"tags,omitempty"`
}

// NewClient returns a social client, or nil when no webhook is configured.
func NewClient(cfg config.SocialConfig, log *logger.Logger) *Client {
	if !cfg.IsSocialEnabled() {
		return nil
	}

	return &Client{
		webhookURL: strings.TrimRight(cfg.GetSocialWebhookURL(), "/"),
		apiKey:     cfg.GetSocialAPIKey(),
		http:       &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// PostMarketUpdate publishes one market-update message.
func (c *Client) PostMarketUpdate(ctx context.Context, message string) error {
	if c == nil {
		return nil
	}

	body, err := json.Marshal(postRequest{Message: message, Tags: "market-update"})
	if err != nil {
		return fmt.Errorf("marshal social payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("social request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("social webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("market update posted")
	return nil
}
