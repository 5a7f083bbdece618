package httpapi

import (
	"net/http"
	"strings"

	"github.com/essabriabdelghani/chatbot-gemini/internal/common"
	"github.com/gin-gonic/gin"
)

const accountIDContextKey = "accountID"

// AccountIDFromContext returns the authenticated account id set by RequireAuth.
func AccountIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(accountIDContextKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// RequireAuth gates protected routes behind a bearer token. A missing token
// is 401; a malformed, tampered or expired one is 403. Account existence is
// not checked here; handlers resolve the account themselves.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		claims, err := s.service.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}

		c.Set(accountIDContextKey, claims.UserID)
		c.Next()
	}
}
