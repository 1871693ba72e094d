// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CredentialExtractor pulls the caller's auth key from the Authorization
// header ("Bearer <key>") or the X-Auth-Key header into the request context.
// It never rejects: owner creation and the read-only routes work without a
// key.
func CredentialExtractor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := extractCredential(c); key != "" {
			c.Set("auth_key", key)
		}
		c.Next()
	}
}

// CredentialRequired rejects requests that carry no auth key. The key is
// only checked against the owner's stored credential in the service layer;
// this middleware just refuses anonymous calls to gated routes early.
func CredentialRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("auth_key"); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "an auth key is required for this operation",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractCredential(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.GetHeader("X-Auth-Key")
}
