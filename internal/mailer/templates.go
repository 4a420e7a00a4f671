package mailer

import (
	"fmt"
	"strings"
)

// siteName shows up in auto-reply copy and sender display names.
const siteName = "quietghost.dev"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes user-supplied text for interpolation into email bodies.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// messageHTML escapes a message body and then converts newlines to <br />.
// Escaping must happen first; the other order would let user text smuggle
// markup through the break tags.
func messageHTML(message string) string {
	return strings.ReplaceAll(EscapeHTML(message), "\n", "<br />")
}

// OwnerEmail builds the owner notification for one submission. Reply-To is
// the submitter so the owner can answer directly from their mail client.
func OwnerEmail(from, to, name, email, message string) Email {
	safeName := EscapeHTML(name)
	safeEmail := EscapeHTML(email)
	safeMessage := messageHTML(message)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto; color: #111827;">
  <h2 style="margin: 0 0 12px;">New Contact Form Submission</h2>
  <p style="margin: 0 0 8px;"><strong>Name:</strong> %s</p>
  <p style="margin: 0 0 8px;"><strong>Email:</strong> %s</p>
  <p style="margin: 0;"><strong>Message:</strong><br />%s</p>
</div>`, safeName, safeEmail, safeMessage)

	return Email{
		From:    fmt.Sprintf("Portfolio Contact <%s>", from),
		To:      []string{to},
		Subject: fmt.Sprintf("New Contact Form Message from %s", name),
		ReplyTo: email,
		HTML:    html,
	}
}

// AutoReplyEmail builds the best-effort thank-you sent back to the submitter,
// echoing their (escaped) message.
func AutoReplyEmail(from, to, name, message string) Email {
	safeName := EscapeHTML(name)
	safeMessage := messageHTML(message)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto; padding: 18px; color: #111827;">
  <h2 style="margin: 0 0 14px; color: #0f766e;">Thanks for reaching out, %s.</h2>
  <p style="margin: 0 0 10px;">I received your message and will reply as soon as I can.</p>
  <div style="background: #f3f4f6; border-radius: 8px; padding: 12px; margin: 14px 0;">
    <p style="margin: 0;"><strong>Your message:</strong><br />%s</p>
  </div>
  <p style="margin: 0;">- Kevin (%s)</p>
</div>`, safeName, safeMessage, siteName)

	return Email{
		From:    fmt.Sprintf("%s <%s>", siteName, from),
		To:      []string{to},
		Subject: fmt.Sprintf("Thanks for your message - %s", siteName),
		HTML:    html,
	}
}
