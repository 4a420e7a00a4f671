package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minNameLen    = 2
	maxNameLen    = 80
	maxEmailLen   = 254
	minMessageLen = 8
	maxMessageLen = 4000
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Payload is the raw JSON body of a contact submission.
type Payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	// Company is the honeypot field. It is invisible to humans, so any
	// value means an automated submission.
	Company        string `json:"company"`
	TurnstileToken string `json:"turnstileToken"`
	// WidgetToken is the fallback field name the Turnstile widget posts
	// when the form is submitted without client-side scripting.
	WidgetToken string `json:"cf-turnstile-response"`
}

// IsHoneypot reports whether the hidden bot-trap field was filled in.
func (p Payload) IsHoneypot() bool {
	return strings.TrimSpace(p.Company) != ""
}

// Submission is a fully validated contact request, safe to hand to the
// verification and dispatch stages.
type Submission struct {
	Name    string
	Email   string
	Message string
	Token   string
}

// FieldError is a validation rejection for a specific field, carrying the
// user-facing message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Sanitize validates and normalizes a payload. Rules run in order and the
// first failure wins. It never panics on malformed input.
func Sanitize(p Payload) (Submission, *FieldError) {
	name := strings.TrimSpace(p.Name)
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return Submission{}, &FieldError{Field: "name", Message: "Name must be between 2 and 80 characters."}
	}

	email := strings.ToLower(strings.TrimSpace(p.Email))
	if !emailRegex.MatchString(email) || len(email) > maxEmailLen {
		return Submission{}, &FieldError{Field: "email", Message: "Please provide a valid email address."}
	}

	message := normalizeMessage(p.Message)
	if n := utf8.RuneCountInString(message); n < minMessageLen || n > maxMessageLen {
		return Submission{}, &FieldError{Field: "message", Message: "Message must be between 8 and 4000 characters."}
	}

	token := strings.TrimSpace(p.TurnstileToken)
	if token == "" {
		token = strings.TrimSpace(p.WidgetToken)
	}
	if token == "" {
		return Submission{}, &FieldError{Field: "turnstileToken", Message: "Please complete the verification challenge."}
	}

	return Submission{
		Name:    name,
		Email:   email,
		Message: message,
		Token:   token,
	}, nil
}

// normalizeMessage converts CRLF and bare CR line endings to LF and trims
// surrounding whitespace.
func normalizeMessage(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}
