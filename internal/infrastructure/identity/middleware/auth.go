package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-linkup/internal/infrastructure/identity/port"
)

// ContextUserKey is the gin context key holding the authenticated user id.
const ContextUserKey = "authUserID"

// Bearer verifies the Authorization bearer token on every request and binds
// the resolved user id to the gin context. Requests without a valid
// credential are rejected with 401.
func Bearer(verifier port.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		credential := strings.TrimPrefix(header, "Bearer ")
		if credential == header {
			credential = ""
		}

		identity, err := verifier.Verify(c.Request.Context(), credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credential"})
			return
		}
		c.Set(ContextUserKey, identity.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id bound by Bearer.
func UserID(c *gin.Context) string {
	v, _ := c.Get(ContextUserKey)
	id, _ := v.(string)
	return id
}
