package main

import (
	"os"

	"github.com/quietghost-dev/contact-api/internal/api"
	"github.com/quietghost-dev/contact-api/internal/config"
	"github.com/quietghost-dev/contact-api/internal/contact"
	"github.com/quietghost-dev/contact-api/internal/logging"
	"github.com/quietghost-dev/contact-api/internal/mailer"
	"github.com/quietghost-dev/contact-api/internal/ratelimit"
	"github.com/quietghost-dev/contact-api/internal/turnstile"
	"github.com/quietghost-dev/contact-api/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logging.Configure(&logging.Config{
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	})
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting %s in %s mode", version.String(), cfg.Environment)

	// The service still boots when unprovisioned; submissions get a 503
	// pointing at the direct email fallback until the secrets land.
	if !cfg.MailConfigured() {
		logger.Warn("Email dispatch is not configured (RESEND_API_KEY / CONTACT_FROM_EMAIL / CONTACT_TO_EMAIL)")
	}
	if !cfg.VerificationConfigured() {
		logger.Warn("Bot verification is not configured (TURNSTILE_SECRET_KEY)")
	}

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore())
	verifier := turnstile.NewClient(cfg.TurnstileSecretKey, cfg.AllowedHostnames)
	sender := mailer.NewClient(cfg.ResendAPIKey)

	service := contact.NewService(cfg, limiter, verifier, sender, logger)

	srv := api.NewServer(cfg, service, logger)

	logger.Info("Listening on :%s", cfg.Port)
	if err := srv.Start(); err != nil {
		logger.Error("Server exited: %v", err)
		os.Exit(1)
	}
}
