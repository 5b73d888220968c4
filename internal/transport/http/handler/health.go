package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studycompanion/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": h.app.Config.App.Name + " is running",
		"version": h.app.Config.App.Version,
		"status":  "active",
	})
}

// Check reports readiness. Only the database decides the status code; the other dependencies are
// optional and reported for visibility.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 4*time.Second)
	defer cancel()

	dbStatus := h.checkDatabase(ctx)
	redisStatus := h.checkRedis(ctx)
	rmqStatus := h.checkRabbitMQ()
	aiStatus := h.checkAssistant()

	statusCode := http.StatusOK
	status := "healthy"
	if !dbStatus.OK {
		statusCode = http.StatusServiceUnavailable
		status = "unhealthy"
	} else if !redisStatus.OK || !rmqStatus.OK || !aiStatus.OK {
		status = "degraded"
	}

	c.JSON(statusCode, gin.H{
		"status":     status,
		"app":        h.app.Config.App.Name,
		"env":        h.app.Config.App.Env,
		"uptime_sec": int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"rabbitmq": rmqStatus,
			"ai":       aiStatus,
		},
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) dependencyStatus {
	if err := h.app.EnsureSchema(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	if err := h.app.PingDatabase(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if h.app.Redis == nil {
		return dependencyStatus{OK: false, Message: "not configured"}
	}
	if err := h.app.Redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	if !h.app.CacheEnabled {
		return dependencyStatus{OK: true, Message: "reachable, cache disabled until restart"}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRabbitMQ() dependencyStatus {
	if h.app.MQConn == nil || h.app.MQConn.IsClosed() {
		return dependencyStatus{OK: false, Message: "connection closed"}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkAssistant() dependencyStatus {
	if h.app.Assistant == nil {
		return dependencyStatus{OK: false, Message: "not configured"}
	}
	return dependencyStatus{OK: true}
}
