package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"studycompanion/internal/transport/http/response"
)

// RequireReady runs ensure before every request and answers 503 while it fails. ensure is expected
// to be cheap once it has succeeded.
func RequireReady(ensure func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ensure(c.Request.Context()); err != nil {
			log.Warn().Err(err).
				Str("request_id", c.GetString(ContextRequestIDKey)).
				Str("path", c.FullPath()).
				Msg("storage not ready")
			response.Error(c, http.StatusServiceUnavailable, response.CodeServiceUnavailable, "storage is not available, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
