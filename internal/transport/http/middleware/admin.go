package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studycompanion/internal/transport/http/response"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKey only lets through requests carrying the configured operator key.
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := strings.TrimSpace(c.GetHeader(AdminKeyHeader))
		if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid admin key")
			c.Abort()
			return
		}
		c.Next()
	}
}
