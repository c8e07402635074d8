package mailerlite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/oriently/oriently-backend/internal/pkg/envutil"
	"github.com/oriently/oriently-backend/internal/pkg/httpx"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

// Client sends transactional email through the MailerLite API.
type Client interface {
	SendEmail(ctx context.Context, req SendEmailRequest) (*Email, error)
}

type Config struct {
	APIKey     string
	BaseURL    string
	FromEmail  string
	FromName   string
	Timeout    time.Duration
	MaxRetries int
}

func ConfigFromEnv() Config {
	return Config{
		APIKey:     strings.TrimSpace(os.Getenv("MAILERLITE_API_KEY")),
		BaseURL:    strings.TrimSpace(os.Getenv("MAILERLITE_BASE_URL")),
		FromEmail:  envutil.Str("MAILERLITE_FROM_EMAIL", "noreply@oriently.it"),
		FromName:   envutil.Str("MAILERLITE_FROM_NAME", "Oriently Quiz"),
		Timeout:    envutil.DurationSeconds("MAILERLITE_TIMEOUT_SECONDS", 10*time.Second),
		MaxRetries: envutil.Int("MAILERLITE_MAX_RETRIES", 2),
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing MAILERLITE_API_KEY")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://connect.mailerlite.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &client{
		log:        log.With("client", "MailerLiteClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

type SendEmailRequest struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
}

// Email is the provider's acknowledgment of an accepted message.
type Email struct {
	ID      string `json:"id,omitempty"`
	Status  string `json:"status,omitempty"`
	Subject string `json:"subject,omitempty"`
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("mailerlite http %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type emailPayload struct {
	To      []emailAddress `json:"to"`
	From    emailAddress   `json:"from"`
	Subject string         `json:"subject"`
	HTML    string         `json:"html"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (c *client) SendEmail(ctx context.Context, req SendEmailRequest) (*Email, error) {
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("mailerlite client unavailable")
	}
	req.ToEmail = strings.TrimSpace(req.ToEmail)
	if req.ToEmail == "" {
		return nil, fmt.Errorf("recipient email required")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, fmt.Errorf("subject required")
	}

	payload := emailPayload{
		To:      []emailAddress{{Email: req.ToEmail, Name: req.ToName}},
		From:    emailAddress{Email: c.cfg.FromEmail, Name: c.cfg.FromName},
		Subject: req.Subject,
		HTML:    req.HTML,
	}

	backoff := 1 * time.Second
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, payload)
		if err == nil {
			var out Email
			if uErr := json.Unmarshal(raw, &out); uErr != nil {
				// Provider acknowledged the send; an unparseable body is
				// reported as accepted with no detail.
				c.log.Warn("MailerLite response decode failed", "error", uErr)
				return &Email{}, nil
			}
			return &out, nil
		}
		lastErr = err

		if !httpx.IsRetryableError(err) || attempt == c.cfg.MaxRetries {
			break
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("MailerLite request retrying",
			"attempt", attempt+1,
			"max_retries", c.cfg.MaxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}

	return nil, lastErr
}

func (c *client) doOnce(ctx context.Context, payload emailPayload) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/emails", &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}
