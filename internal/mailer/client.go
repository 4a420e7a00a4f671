package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultEndpoint is the Resend transactional email API.
const DefaultEndpoint = "https://api.resend.com/emails"

// maxErrorBodyBytes caps how much of an error payload is carried into the
// returned error, so a large provider response cannot flood the logs.
const maxErrorBodyBytes = 300

// Email is one outbound message in Resend's wire format.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	ReplyTo string   `json:"reply_to,omitempty"`
	HTML    string   `json:"html"`
}

// Client sends email through the Resend HTTP API. Outbound calls are paced
// with a token bucket; Resend throttles around 2 requests per second.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
	pacer    *rate.Limiter
}

// NewClient creates a Resend client authenticated with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		pacer: rate.NewLimiter(rate.Limit(2), 2),
	}
}

// Send delivers one email. A non-2xx answer is converted into an error
// carrying the status code and a truncated response body for diagnostics.
func (c *Client) Send(ctx context.Context, email Email) error {
	if err := c.pacer.Wait(ctx); err != nil {
		return fmt.Errorf("send pacing interrupted: %w", err)
	}

	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return fmt.Errorf("resend request failed (%d): %s", resp.StatusCode, string(body))
}
