package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/quietghost-dev/contact-api/internal/config"
	"github.com/quietghost-dev/contact-api/internal/logging"
	"github.com/quietghost-dev/contact-api/internal/mailer"
	"github.com/quietghost-dev/contact-api/internal/ratelimit"
	"github.com/quietghost-dev/contact-api/internal/turnstile"
)

// Verifier checks a bot-verification token. Satisfied by *turnstile.Client.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) turnstile.Result
}

// Sender delivers one outbound email. Satisfied by *mailer.Client.
type Sender interface {
	Send(ctx context.Context, email mailer.Email) error
}

// Service runs the submission pipeline: sanitize, honeypot, rate limit,
// verify, then the two sends (critical owner notification, best-effort
// auto-reply).
type Service struct {
	cfg      *config.Config
	limiter  *ratelimit.Limiter
	verifier Verifier
	sender   Sender
	logger   *logging.Logger
}

// Outcome is the terminal result of one submission, already mapped to its
// HTTP representation.
type Outcome struct {
	Status  int
	Success bool
	// Warning is set when the submission succeeded but the auto-reply was
	// not delivered.
	Warning string
	// Error is the user-facing failure message. Never contains internal
	// detail; causes are logged server-side instead.
	Error string
	// RetryAfterSeconds is set on rate-limit denials for the Retry-After
	// header.
	RetryAfterSeconds int
}

// NewService creates the submission pipeline service.
func NewService(cfg *config.Config, limiter *ratelimit.Limiter, verifier Verifier, sender Sender, logger *logging.Logger) *Service {
	return &Service{
		cfg:      cfg,
		limiter:  limiter,
		verifier: verifier,
		sender:   sender,
		logger:   logger,
	}
}

// Process handles one raw submission body from the given client IP.
func (s *Service) Process(ctx context.Context, body []byte, clientIP string) Outcome {
	// Not provisioned is a 503, not a hard failure: the user gets pointed
	// at the direct email fallback.
	if !s.cfg.MailConfigured() {
		return Outcome{
			Status: http.StatusServiceUnavailable,
			Error:  "Contact form is not configured yet. Use the direct email link for now.",
		}
	}
	if !s.cfg.VerificationConfigured() {
		return Outcome{
			Status: http.StatusServiceUnavailable,
			Error:  "Verification is not configured yet. Try again shortly.",
		}
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Outcome{
			Status: http.StatusBadRequest,
			Error:  "Invalid request body.",
		}
	}

	// Bots that fill the hidden field get a response indistinguishable
	// from a real success, and no email is ever sent.
	if payload.IsHoneypot() {
		s.logger.Info("contact honeypot triggered for %s", clientIP)
		return Outcome{Status: http.StatusOK, Success: true}
	}

	submission, fieldErr := Sanitize(payload)
	if fieldErr != nil {
		return Outcome{
			Status: http.StatusBadRequest,
			Error:  fieldErr.Message,
		}
	}

	window := time.Duration(s.cfg.RateLimitWindowSeconds) * time.Second
	limit := s.limiter.Consume(ratelimit.Key(clientIP), s.cfg.RateLimitMax, window)
	if !limit.Allowed {
		return Outcome{
			Status:            http.StatusTooManyRequests,
			Error:             "Too many contact attempts. Please wait and retry.",
			RetryAfterSeconds: limit.RetryAfterSeconds,
		}
	}

	verification := s.verifier.Verify(ctx, submission.Token, clientIP)
	if !verification.OK {
		return Outcome{
			Status: http.StatusBadRequest,
			Error:  verification.Error,
		}
	}

	// Owner notification is the critical send: its failure aborts the whole
	// submission, and the auto-reply must never be attempted before it has
	// been dispatched. Neither send is retried; verification tokens and the
	// owner copy are both worse off duplicated than occasionally missed.
	ownerEmail := mailer.OwnerEmail(s.cfg.FromEmail, s.cfg.ToEmail, submission.Name, submission.Email, submission.Message)
	if err := s.sender.Send(ctx, ownerEmail); err != nil {
		s.logger.Error("contact owner notification failed: %v", err)
		return Outcome{
			Status: http.StatusBadGateway,
			Error:  "Unable to send message right now. Please try again shortly.",
		}
	}

	autoReply := mailer.AutoReplyEmail(s.cfg.AutoReplyFromEmail, submission.Email, submission.Name, submission.Message)
	if err := s.sender.Send(ctx, autoReply); err != nil {
		s.logger.Warn("contact auto-reply failed: %v", err)
		return Outcome{
			Status:  http.StatusOK,
			Success: true,
			Warning: "auto-reply failed to send",
		}
	}

	return Outcome{Status: http.StatusOK, Success: true}
}
