package repositories

import (
	"context"
	"time"

	"github.com/taskforge-api/models"
	"gorm.io/gorm"
)

// ActivityCriteria filters an activity listing
type ActivityCriteria struct {
	TaskID       string
	ProjectID    string
	UserID       string
	Action       models.ActivityAction
	CreatedAfter *time.Time
}

func (c ActivityCriteria) scope(db *gorm.DB) *gorm.DB {
	if c.TaskID != "" {
		db = db.Where("task_id = ?", c.TaskID)
	}
	if c.ProjectID != "" {
		db = db.Where("project_id = ?", c.ProjectID)
	}
	if c.UserID != "" {
		db = db.Where("user_id = ?", c.UserID)
	}
	if c.Action != "" {
		db = db.Where("action = ?", c.Action)
	}
	if c.CreatedAfter != nil {
		db = db.Where("created_at > ?", *c.CreatedAfter)
	}
	return db
}

// ActivityLogRepository appends and reads activity log entries
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository instance
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create appends one entry
func (r *ActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindWithPagination retrieves entries newest first with their user, task and project attached
func (r *ActivityLogRepository) FindWithPagination(ctx context.Context, criteria ActivityCriteria, page Page) ([]models.ActivityLog, int64, error) {
	logs, total, err := findPage[models.ActivityLog](ctx, r.db, criteria.scope, "created_at DESC", page)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachRelations(ctx, logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Count counts matching entries
func (r *ActivityLogRepository) Count(ctx context.Context, criteria ActivityCriteria) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Scopes(criteria.scope).Count(&count)
	return count, result.Error
}

// Entries keep ids of rows that may have been deleted since, so relations are
// looked up here instead of through foreign keys. Missing rows stay nil.
func (r *ActivityLogRepository) attachRelations(ctx context.Context, logs []models.ActivityLog) error {
	if len(logs) == 0 {
		return nil
	}
	var userIDs, projectIDs, taskIDs []string
	for _, l := range logs {
		if l.UserID != nil {
			userIDs = append(userIDs, *l.UserID)
		}
		if l.ProjectID != nil {
			projectIDs = append(projectIDs, *l.ProjectID)
		}
		if l.TaskID != nil {
			taskIDs = append(taskIDs, *l.TaskID)
		}
	}

	users, err := findByIDs[models.User](ctx, r.db, userIDs)
	if err != nil {
		return err
	}
	projects, err := findByIDs[models.Project](ctx, r.db, projectIDs)
	if err != nil {
		return err
	}
	tasks, err := findByIDs[models.Task](ctx, r.db, taskIDs)
	if err != nil {
		return err
	}

	userByID := make(map[string]*models.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}
	projectByID := make(map[string]*models.Project, len(projects))
	for i := range projects {
		projectByID[projects[i].ID] = &projects[i]
	}
	taskByID := make(map[string]*models.Task, len(tasks))
	for i := range tasks {
		taskByID[tasks[i].ID] = &tasks[i]
	}

	for i := range logs {
		if id := logs[i].UserID; id != nil {
			logs[i].User = userByID[*id]
		}
		if id := logs[i].ProjectID; id != nil {
			logs[i].Project = projectByID[*id]
		}
		if id := logs[i].TaskID; id != nil {
			logs[i].Task = taskByID[*id]
		}
	}
	return nil
}

func findByIDs[T any](ctx context.Context, db *gorm.DB, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []T
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}
