package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dto "github.com/quietghost-dev/contact-api/internal/api/dto/contact"
)

type TurnstileHandler struct {
	siteKey string
}

func NewTurnstileHandler(siteKey string) *TurnstileHandler {
	return &TurnstileHandler{siteKey: siteKey}
}

// Config handles GET /api/turnstile-config, which the widget loader on the
// portfolio site calls to fetch the public site key. The site key rotates
// with deploys, so responses must not be cached.
func (h *TurnstileHandler) Config(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if h.siteKey == "" {
		c.JSON(http.StatusServiceUnavailable, dto.TurnstileConfigResponse{
			Error: "Turnstile site key is not configured.",
		})
		return
	}

	c.JSON(http.StatusOK, dto.TurnstileConfigResponse{
		Success: true,
		SiteKey: h.siteKey,
	})
}
