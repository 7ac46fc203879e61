package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskforge-api/database/dbtest"
	"github.com/taskforge-api/models"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    *UserRepository
	projects *ProjectRepository
	tasks    *TaskRepository
	comments *CommentRepository
	activity *ActivityLogRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	return &fixture{
		db:       db,
		users:    NewUserRepository(db),
		projects: NewProjectRepository(db),
		tasks:    NewTaskRepository(db),
		comments: NewCommentRepository(db),
		activity: NewActivityLogRepository(db),
	}
}

func (f *fixture) user(t *testing.T, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "password123", Name: "Test User"}
	require.NoError(t, f.users.Create(context.Background(), &u))
	return u
}

func (f *fixture) project(t *testing.T, ownerID, name string) models.Project {
	t.Helper()
	p := models.Project{Name: name, OwnerID: ownerID}
	require.NoError(t, f.projects.Create(context.Background(), &p))
	return p
}

func (f *fixture) task(t *testing.T, projectID, title string, mutate ...func(*models.Task)) models.Task {
	t.Helper()
	task := models.Task{
		Title:     title,
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityMedium,
		ProjectID: projectID,
	}
	for _, m := range mutate {
		m(&task)
	}
	require.NoError(t, f.tasks.Create(context.Background(), &task))
	return task
}
