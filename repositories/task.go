package repositories

import (
	"context"
	"time"

	"github.com/taskforge-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskCriteria filters a task listing. Zero values are ignored.
type TaskCriteria struct {
	Status       models.TaskStatus
	Priority     models.TaskPriority
	DueBefore    *time.Time
	DueFrom      *time.Time
	DueTo        *time.Time
	UpdatedAfter *time.Time
	ProjectID    string
	AssigneeID   string
}

func (c TaskCriteria) scope(db *gorm.DB) *gorm.DB {
	if c.Status != "" {
		db = db.Where("status = ?", c.Status)
	}
	if c.Priority != "" {
		db = db.Where("priority = ?", c.Priority)
	}
	if c.DueBefore != nil {
		db = db.Where("due_date <= ?", *c.DueBefore)
	}
	if c.DueFrom != nil {
		db = db.Where("due_date >= ?", *c.DueFrom)
	}
	if c.DueTo != nil {
		db = db.Where("due_date <= ?", *c.DueTo)
	}
	if c.UpdatedAfter != nil {
		db = db.Where("updated_at > ?", *c.UpdatedAfter)
	}
	if c.ProjectID != "" {
		db = db.Where("project_id = ?", c.ProjectID)
	}
	if c.AssigneeID != "" {
		db = db.Where("assignee_id = ?", c.AssigneeID)
	}
	return db
}

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID retrieves a task with its project
func (r *TaskRepository) FindByID(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	result := r.db.WithContext(ctx).Preload("Project").First(&task, "id = ?", id)
	return task, result.Error
}

// FindWithPagination retrieves tasks newest first, each with its project
func (r *TaskRepository) FindWithPagination(ctx context.Context, criteria TaskCriteria, page Page) ([]models.Task, int64, error) {
	return findPage[models.Task](ctx, r.db, criteria.scope, "created_at DESC", page, "Project")
}

// Update applies changes to a task and returns the row as it was before and after
func (r *TaskRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (models.Task, models.Task, error) {
	var before, after models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&before, "id = ?", id).Error; err != nil {
			return err
		}
		target := models.Task{ID: id}
		if err := tx.Model(&target).Omit(clause.Associations).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Preload("Project").First(&after, "id = ?", id).Error
	})
	return before, after, err
}

// Delete removes a task and returns the deleted row
func (r *TaskRepository) Delete(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
	return task, err
}

// Exists checks if a task exists
func (r *TaskRepository) Exists(ctx context.Context, id string) (bool, error) {
	return rowExists[models.Task](ctx, r.db, id)
}
