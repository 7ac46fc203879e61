package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/services"
)

// ProjectController handles project endpoints
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// RegisterRoutes registers project routes
func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.POST("", c.CreateProject)
		projects.GET("", c.ListProjects)
		projects.GET("/:id", c.GetProject)
		projects.PATCH("/:id", c.UpdateProject)
		projects.DELETE("/:id", c.DeleteProject)
	}
}

// CreateProject godoc
// @Summary Create a new project
// @Description Create a project owned by an existing user
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project Data"
// @Success 201 {object} models.Project
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	project, err := req.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	created, err := c.projectService.Create(ctx.Request.Context(), project)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListProjects godoc
// @Summary List projects with pagination and filtering
// @Description Most recently updated first, each with its tasks
// @Tags projects
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param ownerId query string false "Owner user ID"
// @Param days query int false "Updated within the last N days"
// @Success 200 {object} dto.Envelope[models.Project]
// @Router /projects [get]
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	var filter dto.ProjectFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondBindError(ctx, err)
		return
	}
	query, err := filter.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	page, err := c.projectService.FindAll(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// GetProject godoc
// @Summary Get a project by ID
// @Description Get a project with its owner and tasks
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	project, err := c.projectService.FindOne(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Update an existing project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Changed fields"
// @Success 200 {object} models.Project
// @Router /projects/{id} [patch]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	changes, err := req.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	project, err := c.projectService.Update(ctx.Request.Context(), ctx.Param("id"), changes)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Delete a project together with its tasks and comments
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	project, err := c.projectService.Remove(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, project)
}
