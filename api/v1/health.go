package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-api/services"
)

// HealthController answers probes and the service banner
type HealthController struct {
	healthService *services.HealthService
	version       string
}

// NewHealthController creates a new health controller
func NewHealthController(healthService *services.HealthService, version string) *HealthController {
	return &HealthController{healthService: healthService, version: version}
}

// RegisterRoutes registers health routes
func (c *HealthController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", c.Info)
	router.GET("/health", c.HealthCheck)
	router.GET("/health/db", c.DatabaseCheck)
}

// Info handles the root endpoint
func (c *HealthController) Info(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "taskforge-api",
		"version": c.version,
	})
}

// HealthCheck handles the liveness probe
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.healthService.Check())
}

// DatabaseCheck reports whether the database answers
func (c *HealthController) DatabaseCheck(ctx *gin.Context) {
	if err := c.healthService.CheckDatabase(ctx.Request.Context()); err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"ok":      false,
			"message": "Database unreachable",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
