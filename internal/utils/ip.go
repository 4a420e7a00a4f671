package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetClientIP extracts the client IP from proxy headers. The single-hop
// CF-Connecting-IP header is trusted first, then the leftmost entry of
// X-Forwarded-For. Requests with neither share the literal "unknown", which
// funnels unattributable traffic into one rate-limit bucket.
func GetClientIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); ip != "" {
		return ip
	}

	forwardedFor := c.GetHeader("X-Forwarded-For")
	if forwardedFor != "" {
		// X-Forwarded-For is a comma-separated list: client, proxy1, ...
		ips := strings.Split(forwardedFor, ",")
		if ip := strings.TrimSpace(ips[0]); ip != "" {
			return ip
		}
	}

	return "unknown"
}
