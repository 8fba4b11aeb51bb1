// Package sms sends text messages through the Twilio REST API.
package sms

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"neargo/config"
	"neargo/internal/domain"
)

const apiBase = "https://api.twilio.com/2010-04-01"

// Sender implements domain.SMSSender against Twilio. Missing credentials are
// a non-fatal skip: Send logs and returns nil so callers never fail a
// request because SMS is not set up.
type Sender struct {
	client     *http.Client
	baseURL    string
	accountSID string
	authToken  string
	from       string
	logger     *slog.Logger
}

func New(cfg config.SMSConfig, logger *slog.Logger) *Sender {
	return &Sender{
		client:     &http.Client{Timeout: 10 * time.Second},
		baseURL:    apiBase,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.From,
		logger:     logger,
	}
}

func (s *Sender) configured() bool {
	return s.accountSID != "" && s.authToken != "" && s.from != ""
}

func (s *Sender) Send(ctx context.Context, to, body string) error {
	if !s.configured() {
		s.logger.Info("sms not configured, skipping", "to", to)
		return nil
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms api returned status: %d", resp.StatusCode)
	}
	s.logger.Info("sms sent", "to", to)
	return nil
}

var _ domain.SMSSender = (*Sender)(nil)
