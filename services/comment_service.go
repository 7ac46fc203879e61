package services

import (
	"context"
	"fmt"

	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/models"
	"github.com/taskforge-api/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	comments *repositories.CommentRepository
	users    *repositories.UserRepository
	projects *repositories.ProjectRepository
	tasks    *repositories.TaskRepository
}

// NewCommentService creates a new comment service instance
func NewCommentService(
	comments *repositories.CommentRepository,
	users *repositories.UserRepository,
	projects *repositories.ProjectRepository,
	tasks *repositories.TaskRepository,
) *CommentService {
	return &CommentService{comments: comments, users: users, projects: projects, tasks: tasks}
}

// Create persists a comment and returns it with its author
func (s *CommentService) Create(ctx context.Context, comment models.Comment) (models.Comment, error) {
	comment.ID = ""
	if err := s.comments.Create(ctx, &comment); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return models.Comment{}, s.missingReference(ctx, comment)
		}
		return models.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// FindAll returns every matching comment, newest first
func (s *CommentService) FindAll(ctx context.Context, filter dto.CommentFilter) ([]models.Comment, error) {
	comments, err := s.comments.FindAll(ctx, repositories.CommentCriteria{
		ProjectID: filter.ProjectID,
		TaskID:    filter.TaskID,
	})
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// FindOne retrieves a comment with its author
func (s *CommentService) FindOne(ctx context.Context, id string) (models.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Comment{}, notFound("Comment", id)
		}
		return models.Comment{}, err
	}
	return comment, nil
}

// Update edits a comment
func (s *CommentService) Update(ctx context.Context, id string, changes dto.Changes) (models.Comment, error) {
	comment, err := s.comments.Update(ctx, id, changes)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Comment{}, notFound("Comment", id)
		}
		return models.Comment{}, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// Remove deletes a comment
func (s *CommentService) Remove(ctx context.Context, id string) (models.Comment, error) {
	comment, err := s.comments.Delete(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Comment{}, notFound("Comment", id)
		}
		return models.Comment{}, fmt.Errorf("failed to delete comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) missingReference(ctx context.Context, c models.Comment) error {
	if ok, err := s.users.Exists(ctx, c.UserID); err != nil || !ok {
		return notFound("User", c.UserID)
	}
	if c.ProjectID != nil {
		if ok, err := s.projects.Exists(ctx, *c.ProjectID); err != nil || !ok {
			return notFound("Project", *c.ProjectID)
		}
	}
	if c.TaskID != nil {
		if ok, err := s.tasks.Exists(ctx, *c.TaskID); err != nil || !ok {
			return notFound("Task", *c.TaskID)
		}
	}
	return fmt.Errorf("failed to create comment: %w", ErrNotFound)
}
