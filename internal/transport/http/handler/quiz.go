package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studycompanion/internal/app"
	"studycompanion/internal/transport/http/response"
)

type QuizHandler struct {
	quizService *app.QuizService
}

type GenerateQuizRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	SummaryID string `json:"summary_id" binding:"required"`
}

type GenerateQuizResponse struct {
	QuizID         string    `json:"quiz_id"`
	SummaryID      string    `json:"summary_id"`
	TotalQuestions int       `json:"total_questions"`
	TotalPages     int       `json:"total_pages"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewQuizHandler(quizService *app.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (h *QuizHandler) Generate(c *gin.Context) {
	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	if !authorizeUser(c, strings.TrimSpace(req.UserID)) {
		return
	}

	quiz, err := h.quizService.Generate(c.Request.Context(), app.GenerateQuizInput{
		UserID:    req.UserID,
		SummaryID: req.SummaryID,
	})
	if err != nil {
		writeServiceError(c, err, "failed to generate quiz")
		return
	}

	response.OK(c, GenerateQuizResponse{
		QuizID:         quiz.ID,
		SummaryID:      quiz.SummaryID,
		TotalQuestions: quiz.TotalQuestions,
		TotalPages:     app.TotalPages(quiz),
		CreatedAt:      quiz.CreatedAt,
	})
}

func (h *QuizHandler) GetPage(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "page must be an integer")
			return
		}
		page = parsed
	}

	quizPage, err := h.quizService.GetPage(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		writeServiceError(c, err, "get quiz page failed")
		return
	}
	if !authorizeUser(c, quizPage.UserID) {
		return
	}
	response.OK(c, quizPage)
}

func (h *QuizHandler) List(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "user_id is required")
		return
	}
	if !authorizeUser(c, userID) {
		return
	}
	quizzes, err := h.quizService.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "list quizzes failed")
		return
	}
	response.List(c, len(quizzes), quizzes)
}

func (h *QuizHandler) Usage(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("id"))
	if !authorizeUser(c, userID) {
		return
	}
	usage, err := h.quizService.Usage(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "get usage failed")
		return
	}
	response.OK(c, usage)
}
