package repositories

import (
	"context"
	"time"

	"github.com/taskforge-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectCriteria filters a project listing
type ProjectCriteria struct {
	OwnerID      string
	UpdatedAfter *time.Time
}

func (c ProjectCriteria) scope(db *gorm.DB) *gorm.DB {
	if c.OwnerID != "" {
		db = db.Where("owner_id = ?", c.OwnerID)
	}
	if c.UpdatedAfter != nil {
		db = db.Where("updated_at > ?", *c.UpdatedAfter)
	}
	return db
}

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// FindByID retrieves a project with its owner and tasks
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	result := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&project, "id = ?", id)
	return project, result.Error
}

// FindWithPagination retrieves projects most recently updated first, each with its tasks
func (r *ProjectRepository) FindWithPagination(ctx context.Context, criteria ProjectCriteria, page Page) ([]models.Project, int64, error) {
	return findPage[models.Project](ctx, r.db, criteria.scope, "updated_at DESC", page, "Tasks")
}

// Update modifies an existing project and returns the updated row
func (r *ProjectRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			return err
		}
		target := models.Project{ID: id}
		if err := tx.Model(&target).Omit(clause.Associations).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&project, "id = ?", id).Error
	})
	return project, err
}

// Delete removes a project; tasks and comments follow through ON DELETE CASCADE
func (r *ProjectRepository) Delete(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
	return project, err
}

// Exists checks if a project exists
func (r *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	return rowExists[models.Project](ctx, r.db, id)
}
