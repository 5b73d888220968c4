package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studycompanion/internal/app"
	"studycompanion/internal/model"
	"studycompanion/internal/transport/http/response"
)

type HomeworkHandler struct {
	homeworkService *app.HomeworkService
}

type HomeworkRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Question   string `json:"question" binding:"required,max=8000"`
	Topic      string `json:"topic" binding:"max=128"`
	Difficulty string `json:"difficulty" binding:"max=32"`
}

type HomeworkResponse struct {
	RequestID string `json:"request_id"`
	*model.HomeworkRecord
}

func NewHomeworkHandler(homeworkService *app.HomeworkService) *HomeworkHandler {
	return &HomeworkHandler{homeworkService: homeworkService}
}

func (h *HomeworkHandler) Solve(c *gin.Context) {
	var req HomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	if !authorizeUser(c, strings.TrimSpace(req.UserID)) {
		return
	}

	record, err := h.homeworkService.Solve(c.Request.Context(), app.HomeworkInput{
		UserID:     req.UserID,
		Question:   req.Question,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		writeServiceError(c, err, "failed to generate homework help")
		return
	}
	response.OK(c, HomeworkResponse{RequestID: record.ID, HomeworkRecord: record})
}

func (h *HomeworkHandler) Get(c *gin.Context) {
	record, err := h.homeworkService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get homework record failed")
		return
	}
	if !authorizeUser(c, record.UserID) {
		return
	}
	response.OK(c, HomeworkResponse{RequestID: record.ID, HomeworkRecord: record})
}

func (h *HomeworkHandler) List(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "user_id is required")
		return
	}
	if !authorizeUser(c, userID) {
		return
	}
	records, err := h.homeworkService.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "list homework records failed")
		return
	}
	response.List(c, len(records), records)
}
