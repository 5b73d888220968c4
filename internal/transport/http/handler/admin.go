package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studycompanion/internal/app"
	"studycompanion/internal/pkg/jwtutil"
	"studycompanion/internal/transport/http/response"
)

// AdminHandler serves operator endpoints: issuing bearer tokens for users and changing plans.
type AdminHandler struct {
	quizService *app.QuizService
	jwtSecret   string
	tokenTTL    time.Duration
}

type IssueTokenRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ExpiresIn int    `json:"expires_in_minutes" binding:"omitempty,min=1,max=43200"`
}

type IssueTokenResponse struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SetSubscriptionRequest struct {
	SubscriptionType string `json:"subscription_type" binding:"required"`
}

func NewAdminHandler(quizService *app.QuizService, jwtSecret string, tokenTTL time.Duration) *AdminHandler {
	if tokenTTL <= 0 {
		tokenTTL = 2 * time.Hour
	}
	return &AdminHandler{
		quizService: quizService,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

func (h *AdminHandler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "user_id is required")
		return
	}

	ttl := h.tokenTTL
	if req.ExpiresIn > 0 {
		ttl = time.Duration(req.ExpiresIn) * time.Minute
	}
	expiresAt := time.Now().Add(ttl)
	token, err := jwtutil.GenerateToken(h.jwtSecret, ttl, userID)
	if err != nil {
		writeServiceError(c, err, "issue token failed")
		return
	}
	response.OK(c, IssueTokenResponse{UserID: userID, Token: token, ExpiresAt: expiresAt})
}

func (h *AdminHandler) SetSubscription(c *gin.Context) {
	var req SetSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	usage, err := h.quizService.SetSubscription(c.Request.Context(), c.Param("id"), req.SubscriptionType)
	if err != nil {
		writeServiceError(c, err, "update subscription failed")
		return
	}
	response.OK(c, usage)
}
