package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() Payload {
	return Payload{
		Name:           "Al",
		Email:          "a@b.co",
		Message:        "Hello there, testing.",
		TurnstileToken: "tok123",
	}
}

func TestSanitizeValid(t *testing.T) {
	sub, err := Sanitize(validPayload())
	require.Nil(t, err)

	assert.Equal(t, "Al", sub.Name)
	assert.Equal(t, "a@b.co", sub.Email)
	assert.Equal(t, "Hello there, testing.", sub.Message)
	assert.Equal(t, "tok123", sub.Token)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"too short", "A", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 81), true},
		{"exactly max", strings.Repeat("a", 80), false},
		{"trimmed to valid", "  Al  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			p.Name = tt.value
			_, err := Sanitize(p)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "name", err.Field)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"missing at", "abc.co", true},
		{"missing tld", "a@b", true},
		{"contains space", "a b@c.co", true},
		{"too long", strings.Repeat("a", 250) + "@b.co", true},
		{"valid", "Someone@Example.COM", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			p.Email = tt.value
			sub, err := Sanitize(p)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "email", err.Field)
			} else {
				require.Nil(t, err)
				assert.Equal(t, "someone@example.com", sub.Email, "email should be lowercased")
			}
		})
	}
}

func TestSanitizeMessage(t *testing.T) {
	p := validPayload()
	p.Message = "short"
	_, err := Sanitize(p)
	require.NotNil(t, err)
	assert.Equal(t, "message", err.Field)

	p.Message = strings.Repeat("a", 4001)
	_, err = Sanitize(p)
	require.NotNil(t, err)

	// CRLF and CR normalize to LF before the length check
	p.Message = "line one\r\nline two\rline three\r\n"
	sub, err := Sanitize(p)
	require.Nil(t, err)
	assert.Equal(t, "line one\nline two\nline three", sub.Message)
}

func TestSanitizeToken(t *testing.T) {
	p := validPayload()
	p.TurnstileToken = ""
	_, err := Sanitize(p)
	require.NotNil(t, err)
	assert.Equal(t, "turnstileToken", err.Field)
	assert.Equal(t, "Please complete the verification challenge.", err.Message)

	// Widget fallback field is accepted
	p.WidgetToken = "tok456"
	sub, err := Sanitize(p)
	require.Nil(t, err)
	assert.Equal(t, "tok456", sub.Token)
}

func TestIsHoneypot(t *testing.T) {
	p := validPayload()
	assert.False(t, p.IsHoneypot())

	p.Company = "Totally Real Corp"
	assert.True(t, p.IsHoneypot())

	p.Company = "   "
	assert.False(t, p.IsHoneypot())
}
