package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taxrenew/backend/internal/infrastructure/logger"
	"github.com/taxrenew/backend/internal/infrastructure/persistence"
	"github.com/taxrenew/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// DatabaseChecker is the part of the database the health check needs
type DatabaseChecker interface {
	Ping(ctx context.Context) error
	Stats() (persistence.ConnectionStats, error)
}

// HealthHandler reports process and database health
type HealthHandler struct {
	BaseHandler
	db        DatabaseChecker
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db DatabaseChecker, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string                       `json:"status"`
	Database  string                       `json:"database"`
	Time      string                       `json:"time"`
	Version   string                       `json:"version"`
	GoVersion string                       `json:"goVersion"`
	Uptime    string                       `json:"uptime"`
	Pool      *persistence.ConnectionStats `json:"pool,omitempty"`
}

// Check godoc
// @ID           checkHealth
// @Summary      Health check
// @Description  Pings the database and reports connection pool usage.
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Failure      503 {object} ErrorResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Database:  "ok",
		Time:      time.Now().Format(time.RFC3339),
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "error"
		body := dto.NewErrorResponseWithRequestID(dto.ErrCodeStoreUnavailable, "Database is unreachable", getRequestID(c))
		body.Data = resp
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	if stats, err := h.db.Stats(); err == nil {
		resp.Pool = &stats
	}
	h.Success(c, resp)
}
