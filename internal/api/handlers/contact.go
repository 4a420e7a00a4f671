package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	dto "github.com/quietghost-dev/contact-api/internal/api/dto/contact"
	"github.com/quietghost-dev/contact-api/internal/contact"
	"github.com/quietghost-dev/contact-api/internal/utils"
)

type ContactHandler struct {
	service *contact.Service
}

func NewContactHandler(service *contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /api/contact. All branching lives in the contact
// service; this handler only moves bytes and maps the outcome onto HTTP.
func (h *ContactHandler) Submit(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.SubmitResponse{Error: "Invalid request body."})
		return
	}

	outcome := h.service.Process(c.Request.Context(), body, utils.GetClientIP(c))

	if outcome.RetryAfterSeconds > 0 {
		c.Header("Retry-After", strconv.Itoa(outcome.RetryAfterSeconds))
	}

	c.JSON(outcome.Status, dto.SubmitResponse{
		Success: outcome.Success,
		Warning: outcome.Warning,
		Error:   outcome.Error,
	})
}
