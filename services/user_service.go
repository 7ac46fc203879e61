package services

import (
	"context"
	"fmt"

	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/models"
	"github.com/taskforge-api/repositories"
	"github.com/taskforge-api/utils"
)

// UserService handles business logic for users
type UserService struct {
	users         *repositories.UserRepository
	hashPasswords bool
}

// NewUserService creates a new user service instance. With hashPasswords set,
// passwords are stored as bcrypt hashes; otherwise they are stored as given.
func NewUserService(users *repositories.UserRepository, hashPasswords bool) *UserService {
	return &UserService{users: users, hashPasswords: hashPasswords}
}

// Create registers a user. A taken email is a conflict.
func (s *UserService) Create(ctx context.Context, user models.User) (models.User, error) {
	user.ID = ""
	password, err := s.storedPassword(user.Password)
	if err != nil {
		return models.User{}, err
	}
	user.Password = password

	if err := s.users.Create(ctx, &user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, user.Email)
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// FindAll lists users newest first with their projects and assigned tasks
func (s *UserService) FindAll(ctx context.Context, q dto.UserQuery) (dto.Envelope[models.User], error) {
	users, total, err := s.users.FindWithPagination(ctx, repositories.UserCriteria{Email: q.Email},
		repositories.Page{Offset: q.Offset(), Limit: q.Limit})
	if err != nil {
		return dto.Envelope[models.User]{}, err
	}
	return dto.NewEnvelope(users, q.Pagination, total), nil
}

// FindOne retrieves a user with owned projects and assigned tasks
func (s *UserService) FindOne(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.User{}, notFound("User", id)
		}
		return models.User{}, err
	}
	return user, nil
}

// Update applies a partial update
func (s *UserService) Update(ctx context.Context, id string, changes dto.Changes) (models.User, error) {
	if raw := utils.Lookup[string](changes, "password"); raw != "" {
		password, err := s.storedPassword(raw)
		if err != nil {
			return models.User{}, err
		}
		changes["password"] = password
	}

	user, err := s.users.Update(ctx, id, changes)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.User{}, notFound("User", id)
		}
		if repositories.IsUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, utils.Lookup[string](changes, "email"))
		}
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Remove deletes a user. Owned projects and authored comments go with it.
func (s *UserService) Remove(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.User{}, notFound("User", id)
		}
		return models.User{}, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, nil
}

func (s *UserService) storedPassword(password string) (string, error) {
	if !s.hashPasswords {
		return password, nil
	}
	return utils.HashPassword(password)
}
