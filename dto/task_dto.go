package dto

import (
	"strings"
	"time"

	"github.com/taskforge-api/models"
	"github.com/taskforge-api/utils"
)

// Changes is a column-to-value set for a partial update
type Changes map[string]interface{}

// CreateTaskRequest represents the request payload for creating a new task
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description *string             `json:"description"`
	Status      models.TaskStatus   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string             `json:"dueDate"`
	ProjectID   string              `json:"projectId" binding:"required"`
	AssigneeID  *string             `json:"assigneeId"`
}

// Parse validates the request and maps it to a task. Status and priority stay
// empty when omitted so the service can apply its defaults.
func (r CreateTaskRequest) Parse() (models.Task, error) {
	if strings.TrimSpace(r.Title) == "" {
		return models.Task{}, invalid("title", "must not be empty")
	}
	if strings.TrimSpace(r.ProjectID) == "" {
		return models.Task{}, invalid("projectId", "must not be empty")
	}
	if r.Status != "" && !r.Status.Valid() {
		return models.Task{}, invalid("status", "must be one of TODO, IN_PROGRESS, DONE")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return models.Task{}, invalid("priority", "must be one of LOW, MEDIUM, HIGH")
	}
	task := models.Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		ProjectID:   r.ProjectID,
	}
	if r.AssigneeID != nil {
		task.AssigneeID = utils.NilIfEmpty(*r.AssigneeID)
	}
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := utils.ParseISODate(*r.DueDate)
		if err != nil {
			return models.Task{}, invalid("dueDate", err.Error())
		}
		task.DueDate = &due
	}
	return task, nil
}

// UpdateTaskRequest represents a partial task update; absent fields are left untouched
type UpdateTaskRequest struct {
	Title       *string              `json:"title" binding:"omitempty,min=1"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    *models.TaskPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string              `json:"dueDate"`
	ProjectID   *string              `json:"projectId" binding:"omitempty,min=1"`
	// An empty assigneeId unassigns the task
	AssigneeID *string `json:"assigneeId"`
}

// Parse validates the request and returns the column changes it implies
func (r UpdateTaskRequest) Parse() (Changes, error) {
	changes := Changes{}
	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			return nil, invalid("title", "must not be empty")
		}
		changes["title"] = *r.Title
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Status != nil {
		if !r.Status.Valid() {
			return nil, invalid("status", "must be one of TODO, IN_PROGRESS, DONE")
		}
		changes["status"] = *r.Status
	}
	if r.Priority != nil {
		if !r.Priority.Valid() {
			return nil, invalid("priority", "must be one of LOW, MEDIUM, HIGH")
		}
		changes["priority"] = *r.Priority
	}
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := utils.ParseISODate(*r.DueDate)
		if err != nil {
			return nil, invalid("dueDate", err.Error())
		}
		changes["due_date"] = due
	}
	if r.ProjectID != nil {
		if strings.TrimSpace(*r.ProjectID) == "" {
			return nil, invalid("projectId", "must not be empty")
		}
		changes["project_id"] = *r.ProjectID
	}
	if r.AssigneeID != nil {
		changes["assignee_id"] = utils.NilIfEmpty(*r.AssigneeID)
	}
	return changes, nil
}

// TaskFilter holds the raw query parameters of GET /tasks
type TaskFilter struct {
	PageQuery
	Status      models.TaskStatus   `form:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    models.TaskPriority `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     string              `form:"dueDate"`
	DueDateFrom string              `form:"dueDateFrom"`
	DueDateTo   string              `form:"dueDateTo"`
	Days        int                 `form:"days" binding:"omitempty,min=1"`
	ProjectID   string              `form:"projectId"`
	AssigneeID  string              `form:"assigneeId"`
}

// TaskQuery is a validated TaskFilter
type TaskQuery struct {
	Pagination
	Status     models.TaskStatus
	Priority   models.TaskPriority
	DueBefore  *time.Time
	DueFrom    *time.Time
	DueTo      *time.Time
	Days       int
	ProjectID  string
	AssigneeID string
}

// Parse validates the filter and resolves its dates
func (f TaskFilter) Parse() (TaskQuery, error) {
	page, err := f.PageQuery.Normalize()
	if err != nil {
		return TaskQuery{}, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return TaskQuery{}, invalid("status", "must be one of TODO, IN_PROGRESS, DONE")
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return TaskQuery{}, invalid("priority", "must be one of LOW, MEDIUM, HIGH")
	}
	if f.Days < 0 {
		return TaskQuery{}, invalid("days", "must be at least 1")
	}
	q := TaskQuery{
		Pagination: page,
		Status:     f.Status,
		Priority:   f.Priority,
		Days:       f.Days,
		ProjectID:  f.ProjectID,
		AssigneeID: f.AssigneeID,
	}
	if q.DueBefore, err = optionalDate("dueDate", f.DueDate); err != nil {
		return TaskQuery{}, err
	}
	if q.DueFrom, err = optionalDate("dueDateFrom", f.DueDateFrom); err != nil {
		return TaskQuery{}, err
	}
	if q.DueTo, err = optionalDate("dueDateTo", f.DueDateTo); err != nil {
		return TaskQuery{}, err
	}
	return q, nil
}

func optionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := utils.ParseISODate(value)
	if err != nil {
		return nil, invalid(field, err.Error())
	}
	return &t, nil
}
