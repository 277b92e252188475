package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	userIDKey       = "userId"
)

// requestIDMiddleware tags every request with an ID for log correlation,
// generating one when the client did not send its own.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Header(requestIDHeader, reqID)
	c.Set("requestId", reqID)
	c.Next()
}

// authMiddleware guards profile and image routes. It accepts HTTP Basic
// credentials verified against the stored hash, or a bearer token issued by
// the sign-in endpoint. The resolved user ID lands in the Gin context.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.Header("WWW-Authenticate", `Basic realm="user-profile-integration"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	switch parts[0] {
	case "Basic":
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid basic auth encoding",
			})
			return
		}
		userID, err := h.services.Verify(c.Request.Context(), username, password)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid credentials",
			})
			return
		}
		c.Set(userIDKey, userID)

	case "Bearer":
		userID, err := h.services.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}
		c.Set(userIDKey, userID)

	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	c.Next()
}
