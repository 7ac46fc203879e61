package repositories

import (
	"context"

	"github.com/taskforge-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserCriteria filters a user listing
type UserCriteria struct {
	Email string
}

func (c UserCriteria) scope(db *gorm.DB) *gorm.DB {
	if c.Email != "" {
		db = db.Where("email = ?", c.Email)
	}
	return db
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

// FindByID retrieves a user with owned projects and assigned tasks
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Preload("Projects").Preload("Tasks").First(&user, "id = ?", id)
	return user, result.Error
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", email)
	return user, result.Error
}

// FindWithPagination retrieves users newest first with owned projects and assigned tasks
func (r *UserRepository) FindWithPagination(ctx context.Context, criteria UserCriteria, page Page) ([]models.User, int64, error) {
	return findPage[models.User](ctx, r.db, criteria.scope, "created_at DESC", page, "Projects", "Tasks")
}

// Update modifies a user and returns the updated row
func (r *UserRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		target := models.User{ID: id}
		if err := tx.Model(&target).Omit(clause.Associations).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&user, "id = ?", id).Error
	})
	return user, err
}

// Delete removes a user and returns the deleted row. Owned projects and
// authored comments cascade; assigned tasks are unassigned.
func (r *UserRepository) Delete(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
	return user, err
}

// DeleteAll removes every user
func (r *UserRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{})
	return result.RowsAffected, result.Error
}

// Exists checks if a user exists
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	return rowExists[models.User](ctx, r.db, id)
}
