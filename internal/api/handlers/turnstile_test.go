package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quietghost-dev/contact-api/internal/turnstile"
)

func TestTurnstileConfig(t *testing.T) {
	router := newTestServer(t, testConfig(), stubVerifier{turnstile.Result{OK: true}}, &recordingSender{})

	req := httptest.NewRequest(http.MethodGet, "/api/turnstile-config", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"success":true,"siteKey":"site-key-123"}`, w.Body.String())
}

func TestTurnstileConfigUnconfigured(t *testing.T) {
	cfg := testConfig()
	cfg.TurnstileSiteKey = ""
	router := newTestServer(t, cfg, stubVerifier{turnstile.Result{OK: true}}, &recordingSender{})

	req := httptest.NewRequest(http.MethodGet, "/api/turnstile-config", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "not configured")
}
