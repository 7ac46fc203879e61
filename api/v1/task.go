package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/services"
)

// TaskController handles task endpoints
type TaskController struct {
	taskService *services.TaskService
}

// NewTaskController creates a new task controller
func NewTaskController(taskService *services.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

// RegisterRoutes registers task routes
func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", c.CreateTask)
		tasks.GET("", c.ListTasks)
		tasks.GET("/:id", c.GetTask)
		tasks.PATCH("/:id", c.UpdateTask)
		tasks.DELETE("/:id", c.DeleteTask)
	}
}

// CreateTask godoc
// @Summary Create a new task
// @Description Create a task in an existing project and record a CREATE_TASK activity entry
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body dto.CreateTaskRequest true "Task Data"
// @Success 201 {object} models.Task
// @Router /tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	var req dto.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	task, err := req.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	created, err := c.taskService.Create(ctx.Request.Context(), task)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListTasks godoc
// @Summary List tasks with pagination and filtering
// @Description Newest tasks first, each with its project
// @Tags tasks
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "TODO, IN_PROGRESS or DONE"
// @Param priority query string false "LOW, MEDIUM or HIGH"
// @Param dueDate query string false "Due at or before (ISO 8601)"
// @Param dueDateFrom query string false "Due on or after (ISO 8601)"
// @Param dueDateTo query string false "Due on or before (ISO 8601)"
// @Param days query int false "Updated within the last N days"
// @Param projectId query string false "Project ID"
// @Param assigneeId query string false "Assignee user ID"
// @Success 200 {object} dto.Envelope[models.Task]
// @Router /tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	var filter dto.TaskFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondBindError(ctx, err)
		return
	}
	query, err := filter.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	page, err := c.taskService.FindAll(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// GetTask godoc
// @Summary Get a task by ID
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.Task
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	task, err := c.taskService.FindOne(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update an existing task
// @Description Apply a partial update and record an UPDATE_TASK activity entry
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body dto.UpdateTaskRequest true "Changed fields"
// @Success 200 {object} models.Task
// @Router /tasks/{id} [patch]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	changes, err := req.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	task, err := c.taskService.Update(ctx.Request.Context(), ctx.Param("id"), changes)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Delete a task, record a DELETE_TASK activity entry and return the deleted row
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.Task
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	task, err := c.taskService.Remove(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, task)
}
