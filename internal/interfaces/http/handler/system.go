package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opticore/backend/internal/infrastructure/persistence"
)

// SystemHandler serves liveness and readiness probes
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startedAt: time.Now(),
	}
}

// Health handles GET /health: process is up and the store answers a ping
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}
