package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<script>alert("hi")</script>`, `&lt;script&gt;alert(&quot;hi&quot;)&lt;/script&gt;`},
		{"Tom & Jerry's", "Tom &amp; Jerry&#39;s"},
		{"plain text", "plain text"},
	}

	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMessageHTMLEscapesBeforeBreaks(t *testing.T) {
	got := messageHTML("line one\n<script>bad</script>")

	assert.Contains(t, got, "line one<br />")
	assert.Contains(t, got, "&lt;script&gt;")
	assert.NotContains(t, got, "<script>")
}

func TestOwnerEmail(t *testing.T) {
	email := OwnerEmail("contact@quietghost.dev", "owner@quietghost.dev", "Al <admin>", "a@b.co", "Hello there,\ntesting.")

	assert.Equal(t, "Portfolio Contact <contact@quietghost.dev>", email.From)
	assert.Equal(t, []string{"owner@quietghost.dev"}, email.To)
	assert.Equal(t, "a@b.co", email.ReplyTo)
	assert.Equal(t, "New Contact Form Message from Al <admin>", email.Subject)

	assert.Contains(t, email.HTML, "Al &lt;admin&gt;")
	assert.Contains(t, email.HTML, "Hello there,<br />testing.")
	assert.False(t, strings.Contains(email.HTML, "<admin>"))
}

func TestAutoReplyEmail(t *testing.T) {
	email := AutoReplyEmail("hello@quietghost.dev", "a@b.co", "Al", "Hello there, testing.")

	assert.Equal(t, "quietghost.dev <hello@quietghost.dev>", email.From)
	assert.Equal(t, []string{"a@b.co"}, email.To)
	assert.Empty(t, email.ReplyTo)
	assert.Contains(t, email.HTML, "Thanks for reaching out, Al.")
	assert.Contains(t, email.HTML, "Hello there, testing.")
}
