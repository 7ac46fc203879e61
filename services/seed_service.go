package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskforge-api/models"
	"github.com/taskforge-api/repositories"
	"github.com/taskforge-api/utils"
)

const (
	DemoUserEmail   = "demo@taskforge.dev"
	DemoUserName    = "Demo User"
	DemoProjectName = "Website Redesign"
)

var demoTasks = []struct{ title, description string }{
	{"Audit the current site map", "List every page and note which ones can be merged."},
	{"Draft the new component library", "Buttons, forms and cards in the new brand colors."},
	{"Rebuild the landing page", "Port the hero and pricing sections to the new layout."},
	{"Set up redirects for retired URLs", "Keep old links working after launch."},
	{"Run an accessibility pass", "Check contrast, focus order and alt text."},
}

// SeedResult summarises a seed run
type SeedResult struct {
	UsersRemoved int64
	User         models.User
	Project      models.Project
	Tasks        []models.Task
}

// SeedService resets the database to a single demo account
type SeedService struct {
	users    *UserService
	userRepo *repositories.UserRepository
	projects *ProjectService
	tasks    *TaskService
	log      *slog.Logger
}

// NewSeedService creates a new seed service instance
func NewSeedService(userRepo *repositories.UserRepository, users *UserService, projects *ProjectService, tasks *TaskService, log *slog.Logger) *SeedService {
	return &SeedService{users: users, userRepo: userRepo, projects: projects, tasks: tasks, log: log}
}

// Run removes every user, which cascades to their projects, tasks and comments,
// then creates the demo user, one project and five tasks. Tasks go through the
// task service so each one gets its CREATE_TASK entry.
func (s *SeedService) Run(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	removed, err := s.userRepo.DeleteAll(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to clear users: %w", err)
	}
	result.UsersRemoved = removed

	result.User, err = s.users.Create(ctx, models.User{
		Email:    DemoUserEmail,
		Password: "hashedpassword",
		Name:     DemoUserName,
	})
	if err != nil {
		return result, err
	}

	result.Project, err = s.projects.Create(ctx, models.Project{
		Name:        DemoProjectName,
		Description: utils.Ptr("Rebuild the company site with React and Chakra"),
		OwnerID:     result.User.ID,
	})
	if err != nil {
		return result, err
	}

	for _, t := range demoTasks {
		task, err := s.tasks.Create(ctx, models.Task{
			Title:       t.title,
			Description: utils.Ptr(t.description),
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityMedium,
			ProjectID:   result.Project.ID,
		})
		if err != nil {
			return result, err
		}
		result.Tasks = append(result.Tasks, task)
	}

	s.log.Info("Seeded user", "email", result.User.Email, "tasks", len(result.Tasks))
	return result, nil
}
