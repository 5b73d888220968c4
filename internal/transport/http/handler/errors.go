package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"studycompanion/internal/app"
	"studycompanion/internal/transport/http/middleware"
	"studycompanion/internal/transport/http/response"
)

// writeServiceError maps service errors onto the response envelope. Unexpected errors are logged
// and reported with fallback as the message.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrInvalidID):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidPage):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPage, err.Error())
	case errors.Is(err, app.ErrQuotaExceeded):
		response.Error(c, http.StatusPaymentRequired, response.CodeQuotaExceeded, err.Error())
	case errors.Is(err, app.ErrSummaryNotFound):
		response.Error(c, http.StatusNotFound, response.CodeSummaryNotFound, err.Error())
	case errors.Is(err, app.ErrQuizNotFound):
		response.Error(c, http.StatusNotFound, response.CodeQuizNotFound, err.Error())
	case errors.Is(err, app.ErrHomeworkNotFound):
		response.Error(c, http.StatusNotFound, response.CodeHomeworkNotFound, err.Error())
	case errors.Is(err, app.ErrAssistantUnavailable):
		response.Error(c, http.StatusServiceUnavailable, response.CodeServiceUnavailable, err.Error())
	default:
		_ = c.Error(err)
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextRequestIDKey)).
			Str("path", c.FullPath()).
			Msg(fallback)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

// authorizeUser rejects requests whose token subject differs from userID. It always passes when
// authentication is disabled.
func authorizeUser(c *gin.Context, userID string) bool {
	subject, ok := middleware.AuthenticatedUser(c)
	if !ok || subject == userID {
		return true
	}
	response.Error(c, http.StatusForbidden, response.CodeForbidden, "token does not belong to this user")
	return false
}
