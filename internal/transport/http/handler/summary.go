package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"studycompanion/internal/app"
	"studycompanion/internal/model"
	"studycompanion/internal/transport/http/response"
)

type SummaryHandler struct {
	summaryService *app.SummaryService
	maxUploadBytes int64
	tempDir        string
}

// SummaryResponse is a stored summary with its id repeated under the name clients submit back.
type SummaryResponse struct {
	SummaryID string `json:"summary_id"`
	*model.Summary
}

func NewSummaryHandler(summaryService *app.SummaryService, maxUploadBytes int64, tempDir string) *SummaryHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 20 << 20
	}
	return &SummaryHandler{
		summaryService: summaryService,
		maxUploadBytes: maxUploadBytes,
		tempDir:        tempDir,
	}
}

func (h *SummaryHandler) SummarizePDF(c *gin.Context) {
	// multipart overhead is allowed on top of the file limit
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, http.StatusBadRequest, response.CodeFileTooLarge, "uploaded file is too large")
			return
		}
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file is required")
		return
	}
	userID := strings.TrimSpace(c.PostForm("user_id"))
	if userID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "user_id is required")
		return
	}
	if !authorizeUser(c, userID) {
		return
	}

	fileName := filepath.Base(fileHeader.Filename)
	if !strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFile, "only PDF files are supported")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, response.CodeFileTooLarge,
			fmt.Sprintf("uploaded file exceeds %d bytes", h.maxUploadBytes))
		return
	}

	tempPath, err := h.saveUpload(fileHeader)
	if tempPath != "" {
		defer func() {
			if rmErr := os.Remove(tempPath); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Warn().Err(rmErr).Str("path", tempPath).Msg("remove temp upload failed")
			}
		}()
	}
	if err != nil {
		writeServiceError(c, err, "store upload failed")
		return
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(), app.SummarizeInput{
		UserID:   userID,
		FileName: fileName,
		Path:     tempPath,
	})
	if err != nil {
		writeServiceError(c, err, "failed to process PDF")
		return
	}

	response.OK(c, SummaryResponse{SummaryID: summary.ID, Summary: summary})
}

// saveUpload copies the upload to a temp file. The returned path is set whenever a file was
// created, even on error, so the caller can remove it.
func (h *SummaryHandler) saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload failed: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(h.tempDir, "upload-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file failed: %w", err)
	}
	path := dst.Name()
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return path, fmt.Errorf("write temp file failed: %w", err)
	}
	if err := dst.Close(); err != nil {
		return path, fmt.Errorf("close temp file failed: %w", err)
	}
	return path, nil
}

func (h *SummaryHandler) Get(c *gin.Context) {
	summary, err := h.summaryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get summary failed")
		return
	}
	if !authorizeUser(c, summary.UserID) {
		return
	}
	response.OK(c, SummaryResponse{SummaryID: summary.ID, Summary: summary})
}

func (h *SummaryHandler) List(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "user_id is required")
		return
	}
	if !authorizeUser(c, userID) {
		return
	}
	summaries, err := h.summaryService.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "list summaries failed")
		return
	}
	response.List(c, len(summaries), summaries)
}
