package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/taskforge-api/config"
	"github.com/taskforge-api/lib/metrics"
	"github.com/taskforge-api/middleware"
	"github.com/taskforge-api/services"
)

// Services bundles everything the HTTP surface calls into
type Services struct {
	Tasks    *services.TaskService
	Projects *services.ProjectService
	Comments *services.CommentService
	Users    *services.UserService
	Activity *services.ActivityLogService
	Health   *services.HealthService
	// Metrics may be nil, which disables /metrics and request instrumentation
	Metrics *metrics.Metrics
	Version string
}

// NewRouter builds the gin engine with middleware and every route
func NewRouter(cfg config.HTTPConfig, svc Services, log *slog.Logger) *gin.Engine {
	// Reject request bodies with fields the endpoint does not know
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	router.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	router.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	if svc.Metrics != nil {
		router.Use(middleware.Metrics(svc.Metrics))
		router.GET("/metrics", gin.WrapH(svc.Metrics.Handler()))
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Route not found"})
	})

	RegisterRoutes(router.Group(cfg.APIPrefix), svc)
	return router
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.RouterGroup, svc Services) {
	NewHealthController(svc.Health, svc.Version).RegisterRoutes(router)
	NewTaskController(svc.Tasks).RegisterRoutes(router)
	NewProjectController(svc.Projects).RegisterRoutes(router)
	NewCommentController(svc.Comments).RegisterRoutes(router)
	NewUserController(svc.Users).RegisterRoutes(router)
	NewActivityController(svc.Activity).RegisterRoutes(router)
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	return cfg
}
