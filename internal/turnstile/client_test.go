package turnstile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a stub siteverify server.
func newTestClient(t *testing.T, hostnames []string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient("test-secret", hostnames)
	c.endpoint = server.URL
	return c
}

func TestVerifySuccess(t *testing.T) {
	var seen url.Values
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		seen = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"action":"contact_form","hostname":"quietghost.dev"}`))
	})

	res := c.Verify(context.Background(), "tok123", "203.0.113.7")
	assert.True(t, res.OK)
	assert.Empty(t, res.Error)

	assert.Equal(t, "test-secret", seen.Get("secret"))
	assert.Equal(t, "tok123", seen.Get("response"))
	assert.Equal(t, "203.0.113.7", seen.Get("remoteip"))
}

func TestVerifyOmitsEmptyRemoteIP(t *testing.T) {
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.False(t, r.PostForm.Has("remoteip"))
		w.Write([]byte(`{"success":true}`))
	})

	res := c.Verify(context.Background(), "tok123", "")
	assert.True(t, res.OK)
}

func TestVerifyMapsErrorCodes(t *testing.T) {
	tests := []struct {
		name  string
		codes string
		want  string
	}{
		{"missing response", `["missing-input-response"]`, "Please complete the verification challenge."},
		{"expired or duplicate", `["timeout-or-duplicate"]`, "Verification expired. Please retry the challenge."},
		{"bad secret", `["invalid-input-secret"]`, "Verification is misconfigured (invalid secret key)."},
		{"unknown code", `["some-new-code"]`, "Verification failed. Please retry."},
		{"no codes", `[]`, "Verification failed. Please retry."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"error-codes":` + tt.codes + `}`))
			})

			res := c.Verify(context.Background(), "tok123", "")
			assert.False(t, res.OK)
			assert.Equal(t, tt.want, res.Error)
		})
	}
}

func TestVerifyRejectsActionMismatch(t *testing.T) {
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"action":"login_form"}`))
	})

	res := c.Verify(context.Background(), "tok123", "")
	assert.False(t, res.OK)
	assert.Equal(t, "Verification action mismatch. Please retry.", res.Error)
}

func TestVerifyHostnameAllowList(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		wantOK   bool
	}{
		{"allowed hostname", "quietghost.dev", true},
		{"unlisted hostname", "evil.example", false},
		{"missing hostname", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, []string{"quietghost.dev"}, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"hostname":"` + tt.hostname + `"}`))
			})

			res := c.Verify(context.Background(), "tok123", "")
			assert.Equal(t, tt.wantOK, res.OK)
			if !tt.wantOK {
				assert.Equal(t, "Verification hostname mismatch.", res.Error)
			}
		})
	}
}

func TestVerifyServiceUnavailable(t *testing.T) {
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	res := c.Verify(context.Background(), "tok123", "")
	assert.False(t, res.OK)
	assert.Equal(t, "Verification service unavailable. Try again in a moment.", res.Error)
}

func TestVerifyTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := NewClient("test-secret", nil)
	c.endpoint = server.URL

	res := c.Verify(context.Background(), "tok123", "")
	assert.False(t, res.OK)
	assert.Equal(t, "Verification check failed. Please retry.", res.Error)
}
