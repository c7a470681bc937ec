package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"account-activation-service/internal/config"
	"account-activation-service/internal/domain"
	"account-activation-service/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ adapter.Mailer = (*MailpitClient)(nil)

// MailpitClient delivers activation codes through the Mailpit HTTP send API.
// Delivery is a bounded, synchronous call; any failure surfaces as
// domain.ErrDeliveryFailed and is never retried here.
type MailpitClient struct {
	apiURL    string
	fromEmail string
	fromName  string
	client    *http.Client
	log       *zerolog.Logger
}

func NewMailpitClient(cfg config.MailConfig, logger *zerolog.Logger) *MailpitClient {
	return &MailpitClient{
		apiURL:    cfg.APIURL,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		client:    &http.Client{Timeout: cfg.Timeout},
		log:       logger,
	}
}

type address struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type sendRequest struct {
	From    address   `json:"From"`
	To      []address `json:"To"`
	Subject string    `json:"Subject"`
	Text    string    `json:"Text"`
	HTML    string    `json:"HTML,omitempty"`
}

func (c *MailpitClient) SendActivationCode(ctx context.Context, toEmail, code string, ttl time.Duration) error {
	ttlMinutes := ttl.Minutes()
	payload := sendRequest{
		From:    address{Email: c.fromEmail, Name: c.fromName},
		To:      []address{{Email: toEmail}},
		Subject: "Your activation code",
		Text:    textBody(code, ttlMinutes),
		HTML:    htmlBody(code, ttlMinutes),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode payload: %v", domain.ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("api_url", c.apiURL).Msg("mail API call failed")
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Error().Int("status", resp.StatusCode).Str("api_url", c.apiURL).Msg("mail API returned error status")
		return fmt.Errorf("%w: mail API status %d", domain.ErrDeliveryFailed, resp.StatusCode)
	}

	c.log.Info().Str("to", toEmail).Int("status", resp.StatusCode).Msg("activation code email sent")
	return nil
}

func textBody(code string, ttlMinutes float64) string {
	return fmt.Sprintf(
		"Your activation code is: %s\n\n"+
			"This code expires in %g minute(s).\n\n"+
			"If you didn't request this code, please ignore this email.",
		code, ttlMinutes,
	)
}

func htmlBody(code string, ttlMinutes float64) string {
	return fmt.Sprintf(`<h2>Your Activation Code</h2>
<p>Your activation code is:</p>
<p style="font-size: 24px; font-weight: bold; letter-spacing: 2px;">%s</p>
<p>This code expires in <strong>%g minute(s)</strong>.</p>
<p style="color: #666; font-size: 14px;">If you didn't request this code, please ignore this email.</p>`,
		code, ttlMinutes,
	)
}
