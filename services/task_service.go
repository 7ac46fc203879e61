package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/models"
	"github.com/taskforge-api/repositories"
	"github.com/taskforge-api/utils"
)

// TaskService handles task mutations and records an activity entry for each one
type TaskService struct {
	tasks    *repositories.TaskRepository
	projects *repositories.ProjectRepository
	audit    AuditRecorder
	log      *slog.Logger
	now      func() time.Time
}

// NewTaskService creates a new task service instance
func NewTaskService(tasks *repositories.TaskRepository, projects *repositories.ProjectRepository, audit AuditRecorder, log *slog.Logger) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		audit:    audit,
		log:      log,
		now:      utcNow,
	}
}

// Create persists a task, defaulting status to TODO and priority to MEDIUM
func (s *TaskService) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	task.ID = ""

	if err := s.tasks.Create(ctx, &task); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return models.Task{}, s.missingReference(ctx, task.ProjectID, task.AssigneeID)
		}
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.record(ctx, RecordInput{
		Action:    models.ActionCreateTask,
		Message:   fmt.Sprintf("Task \"%s\" created.", task.Title),
		TaskID:    &task.ID,
		ProjectID: &task.ProjectID,
		UserID:    task.AssigneeID,
		NewValue:  taskFields(task),
	})

	created, err := s.tasks.FindByID(ctx, task.ID)
	if err != nil {
		return task, nil
	}
	return created, nil
}

// FindAll lists tasks newest first
func (s *TaskService) FindAll(ctx context.Context, q dto.TaskQuery) (dto.Envelope[models.Task], error) {
	criteria := repositories.TaskCriteria{
		Status:     q.Status,
		Priority:   q.Priority,
		DueBefore:  q.DueBefore,
		DueFrom:    q.DueFrom,
		DueTo:      q.DueTo,
		ProjectID:  q.ProjectID,
		AssigneeID: q.AssigneeID,
	}
	if q.Days > 0 {
		since := utils.DaysAgo(s.now(), q.Days)
		criteria.UpdatedAfter = &since
	}
	tasks, total, err := s.tasks.FindWithPagination(ctx, criteria, repositories.Page{Offset: q.Offset(), Limit: q.Limit})
	if err != nil {
		return dto.Envelope[models.Task]{}, err
	}
	return dto.NewEnvelope(tasks, q.Pagination, total), nil
}

// FindOne retrieves a task with its project
func (s *TaskService) FindOne(ctx context.Context, id string) (models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Task{}, notFound("Task", id)
		}
		return models.Task{}, err
	}
	return task, nil
}

// Update applies a partial update. The audit message names the status
// transition when the status changed.
func (s *TaskService) Update(ctx context.Context, id string, changes dto.Changes) (models.Task, error) {
	before, after, err := s.tasks.Update(ctx, id, changes)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Task{}, notFound("Task", id)
		}
		if repositories.IsForeignKeyViolation(err) {
			return models.Task{}, s.missingReference(ctx,
				utils.Lookup[string](changes, "project_id"),
				utils.Lookup[*string](changes, "assignee_id"))
		}
		return models.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	message := "Task updated."
	if before.Status != after.Status {
		message = fmt.Sprintf("Status changed from %s → %s.", before.Status, after.Status)
	}
	s.record(ctx, RecordInput{
		Action:    models.ActionUpdateTask,
		Message:   message,
		TaskID:    &after.ID,
		ProjectID: &after.ProjectID,
		UserID:    after.AssigneeID,
		OldValue:  changedFields(before, changes),
		NewValue:  changedFields(after, changes),
	})
	return after, nil
}

// Remove deletes a task and records the deletion with the removed row's data
func (s *TaskService) Remove(ctx context.Context, id string) (models.Task, error) {
	task, err := s.tasks.Delete(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Task{}, notFound("Task", id)
		}
		return models.Task{}, fmt.Errorf("failed to delete task: %w", err)
	}

	s.record(ctx, RecordInput{
		Action:    models.ActionDeleteTask,
		Message:   fmt.Sprintf("Task \"%s\" deleted.", task.Title),
		TaskID:    &task.ID,
		ProjectID: &task.ProjectID,
		UserID:    task.AssigneeID,
		OldValue:  taskFields(task),
	})
	return task, nil
}

// The task write has already committed, so a failed audit write is only logged.
func (s *TaskService) record(ctx context.Context, in RecordInput) {
	if _, err := s.audit.Record(ctx, in); err != nil {
		s.log.Warn("Failed to record task activity",
			"action", in.Action,
			"task_id", utils.Deref(in.TaskID),
			"error", err,
		)
	}
}

// A referential failure does not say which reference was dangling, so look.
func (s *TaskService) missingReference(ctx context.Context, projectID string, assigneeID *string) error {
	if projectID != "" {
		exists, err := s.projects.Exists(ctx, projectID)
		if err != nil || !exists {
			return notFound("Project", projectID)
		}
	}
	if assigneeID != nil {
		return notFound("User", *assigneeID)
	}
	return notFound("Project", projectID)
}

var taskColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"status":      "status",
	"priority":    "priority",
	"due_date":    "dueDate",
	"project_id":  "projectId",
	"assignee_id": "assigneeId",
}

func taskFields(t models.Task) map[string]any {
	return map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"priority":    t.Priority,
		"dueDate":     t.DueDate,
		"projectId":   t.ProjectID,
		"assigneeId":  t.AssigneeID,
	}
}

// changedFields picks from t only the fields named by changes
func changedFields(t models.Task, changes dto.Changes) map[string]any {
	all := taskFields(t)
	out := make(map[string]any, len(changes))
	for column := range changes {
		if key, ok := taskColumns[column]; ok {
			out[key] = all[key]
		}
	}
	return out
}
