package turnstile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is Cloudflare's siteverify API.
const DefaultEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// ExpectedAction is the action name the contact widget embeds in its tokens.
// A token minted for a different widget carries a different action and is
// rejected even when Cloudflare reports success.
const ExpectedAction = "contact_form"

// Client verifies Turnstile tokens against Cloudflare. Tokens are single-use,
// so a failed verification is surfaced to the caller rather than retried.
type Client struct {
	secretKey        string
	endpoint         string
	expectedAction   string
	allowedHostnames []string
	client           *http.Client
}

// NewClient creates a Turnstile verification client. When allowedHostnames is
// non-empty, tokens redeemed from any other hostname are rejected.
func NewClient(secretKey string, allowedHostnames []string) *Client {
	return &Client{
		secretKey:        secretKey,
		endpoint:         DefaultEndpoint,
		expectedAction:   ExpectedAction,
		allowedHostnames: allowedHostnames,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Result is the outcome of a verification round trip.
type Result struct {
	OK bool
	// Error holds a human-readable cause when OK is false, written for the
	// person filling in the form.
	Error string
}

// verifyResponse represents the response from the siteverify API
type verifyResponse struct {
	Success    bool     `json:"success"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a widget token with Cloudflare in a single round trip.
// Transport failures and non-2xx answers degrade to a retryable "service
// unavailable" result instead of a hard failure.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) Result {
	payload := url.Values{}
	payload.Set("secret", c.secretKey)
	payload.Set("response", token)
	if remoteIP != "" {
		payload.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return Result{Error: "Verification check failed. Please retry."}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{Error: "Verification check failed. Please retry."}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{Error: "Verification service unavailable. Try again in a moment."}
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{Error: "Verification check failed. Please retry."}
	}

	if !result.Success {
		return Result{Error: errorMessage(result.ErrorCodes)}
	}

	if result.Action != "" && result.Action != c.expectedAction {
		return Result{Error: "Verification action mismatch. Please retry."}
	}

	if len(c.allowedHostnames) > 0 {
		hostname := strings.ToLower(strings.TrimSpace(result.Hostname))
		if hostname == "" || !contains(c.allowedHostnames, hostname) {
			return Result{Error: "Verification hostname mismatch."}
		}
	}

	return Result{OK: true}
}

// errorMessage maps Cloudflare error codes to user-facing copy. Unknown codes
// get the generic fallback.
func errorMessage(codes []string) string {
	messages := []struct {
		code    string
		message string
	}{
		{"timeout-or-duplicate", "Verification expired. Please retry the challenge."},
		{"invalid-input-response", "Verification token is invalid. Please retry."},
		{"missing-input-response", "Please complete the verification challenge."},
		{"invalid-input-secret", "Verification is misconfigured (invalid secret key)."},
		{"missing-input-secret", "Verification is misconfigured (missing secret key)."},
		{"bad-request", "Verification request was invalid. Please retry."},
		{"internal-error", "Verification service error. Please retry shortly."},
	}

	for _, m := range messages {
		if contains(codes, m.code) {
			return m.message
		}
	}
	return "Verification failed. Please retry."
}

func contains(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}
