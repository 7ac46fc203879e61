package repositories

import (
	"context"

	"github.com/taskforge-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentCriteria filters a comment listing
type CommentCriteria struct {
	ProjectID string
	TaskID    string
}

func (c CommentCriteria) scope(db *gorm.DB) *gorm.DB {
	if c.ProjectID != "" {
		db = db.Where("project_id = ?", c.ProjectID)
	}
	if c.TaskID != "" {
		db = db.Where("task_id = ?", c.TaskID)
	}
	return db
}

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment and loads its author
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(comment).Error; err != nil {
		return err
	}
	return db.Preload("User").First(comment, "id = ?", comment.ID).Error
}

// FindAll returns every matching comment, newest first. There is no page bound.
func (r *CommentRepository) FindAll(ctx context.Context, criteria CommentCriteria) ([]models.Comment, error) {
	var comments []models.Comment
	result := r.db.WithContext(ctx).
		Scopes(criteria.scope).
		Preload("User").
		Order("created_at DESC").
		Find(&comments)
	return comments, result.Error
}

// FindByID retrieves a comment with its author
func (r *CommentRepository) FindByID(ctx context.Context, id string) (models.Comment, error) {
	var comment models.Comment
	result := r.db.WithContext(ctx).Preload("User").First(&comment, "id = ?", id)
	return comment, result.Error
}

// Update modifies a comment and returns the updated row
func (r *CommentRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			return err
		}
		target := models.Comment{ID: id}
		if err := tx.Model(&target).Omit(clause.Associations).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Preload("User").First(&comment, "id = ?", id).Error
	})
	return comment, err
}

// Delete removes a comment and returns the deleted row
func (r *CommentRepository) Delete(ctx context.Context, id string) (models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id = ?", id).Error
	})
	return comment, err
}
