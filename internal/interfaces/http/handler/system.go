package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SystemHandler handles liveness and system info endpoints
type SystemHandler struct {
	BaseHandler
	db        *gorm.DB
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// Healthz reports process liveness. Registered at the engine root, outside
// the /api group, so probes skip session and CORS middleware.
func (h *SystemHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports readiness, checking database connectivity
func (h *SystemHandler) Readyz(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Uptime    string `json:"uptime"`
}

// Info returns basic build and uptime information
func (h *SystemHandler) Info(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Storefront API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// RegisterRoutes registers the system info route inside the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/system/info", h.Info)
}
