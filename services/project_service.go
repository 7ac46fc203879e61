package services

import (
	"context"
	"fmt"
	"time"

	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/models"
	"github.com/taskforge-api/repositories"
	"github.com/taskforge-api/utils"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	now         func() time.Time
}

// NewProjectService creates a new project service instance
func NewProjectService(projectRepo *repositories.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, now: utcNow}
}

// Create persists a new project for an existing owner
func (s *ProjectService) Create(ctx context.Context, project models.Project) (models.Project, error) {
	project.ID = ""
	if err := s.projectRepo.Create(ctx, &project); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return models.Project{}, notFound("User", project.OwnerID)
		}
		return models.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// FindAll lists projects most recently updated first, each with its tasks
func (s *ProjectService) FindAll(ctx context.Context, q dto.ProjectQuery) (dto.Envelope[models.Project], error) {
	criteria := repositories.ProjectCriteria{OwnerID: q.OwnerID}
	if q.Days > 0 {
		since := utils.DaysAgo(s.now(), q.Days)
		criteria.UpdatedAfter = &since
	}
	projects, total, err := s.projectRepo.FindWithPagination(ctx, criteria, repositories.Page{Offset: q.Offset(), Limit: q.Limit})
	if err != nil {
		return dto.Envelope[models.Project]{}, err
	}
	return dto.NewEnvelope(projects, q.Pagination, total), nil
}

// FindOne retrieves a project with its owner and tasks
func (s *ProjectService) FindOne(ctx context.Context, id string) (models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Project{}, notFound("Project", id)
		}
		return models.Project{}, err
	}
	return project, nil
}

// Update applies a partial update
func (s *ProjectService) Update(ctx context.Context, id string, changes dto.Changes) (models.Project, error) {
	project, err := s.projectRepo.Update(ctx, id, changes)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Project{}, notFound("Project", id)
		}
		if repositories.IsForeignKeyViolation(err) {
			return models.Project{}, notFound("User", utils.Lookup[string](changes, "owner_id"))
		}
		return models.Project{}, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// Remove deletes a project along with its tasks and comments
func (s *ProjectService) Remove(ctx context.Context, id string) (models.Project, error) {
	project, err := s.projectRepo.Delete(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.Project{}, notFound("Project", id)
		}
		return models.Project{}, fmt.Errorf("failed to delete project: %w", err)
	}
	return project, nil
}
