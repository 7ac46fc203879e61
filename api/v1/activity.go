package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/services"
)

// ActivityController exposes the read side of the activity log
type ActivityController struct {
	activityService *services.ActivityLogService
}

// NewActivityController creates a new activity controller
func NewActivityController(activityService *services.ActivityLogService) *ActivityController {
	return &ActivityController{activityService: activityService}
}

// RegisterRoutes registers activity routes
func (c *ActivityController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/activity", c.ListActivity)
}

// ListActivity returns one page of entries, newest first
func (c *ActivityController) ListActivity(ctx *gin.Context) {
	var filter dto.ActivityFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondBindError(ctx, err)
		return
	}
	query, err := filter.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	page, err := c.activityService.FindAllByEntity(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}
