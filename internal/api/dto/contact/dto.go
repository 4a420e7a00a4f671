package contact

// SubmitResponse is the wire format for POST /api/contact.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Warning string `json:"warning,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TurnstileConfigResponse is the wire format for GET /api/turnstile-config,
// consumed by the client-side widget loader.
type TurnstileConfigResponse struct {
	Success bool   `json:"success"`
	SiteKey string `json:"siteKey,omitempty"`
	Error   string `json:"error,omitempty"`
}
