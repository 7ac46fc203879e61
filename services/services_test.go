package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskforge-api/database/dbtest"
	"github.com/taskforge-api/lib/metrics"
	"github.com/taskforge-api/models"
	"github.com/taskforge-api/repositories"
	"gorm.io/gorm"
)

type publishedEvent struct {
	subject string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{subject: subject, payload: v})
	return nil
}

type env struct {
	db        *gorm.DB
	userRepo  *repositories.UserRepository
	projRepo  *repositories.ProjectRepository
	taskRepo  *repositories.TaskRepository
	logRepo   *repositories.ActivityLogRepository
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	activity  *ActivityLogService
	tasks     *TaskService
	projects  *ProjectService
	comments  *CommentService
	users     *UserService
}

var fixedNow = time.Date(2025, 10, 24, 3, 8, 1, 172_000_000, time.UTC)

func newEnv(t *testing.T) *env {
	t.Helper()
	db := dbtest.New(t)
	e := &env{
		db:        db,
		userRepo:  repositories.NewUserRepository(db),
		projRepo:  repositories.NewProjectRepository(db),
		taskRepo:  repositories.NewTaskRepository(db),
		logRepo:   repositories.NewActivityLogRepository(db),
		publisher: &recordingPublisher{},
		metrics:   metrics.New(),
	}
	e.activity = NewActivityLogService(e.logRepo, dbtest.Logger(),
		WithPublisher(e.publisher, "taskforge.activity"),
		WithMetrics(e.metrics),
	)
	e.tasks = NewTaskService(e.taskRepo, e.projRepo, e.activity, dbtest.Logger())
	e.projects = NewProjectService(e.projRepo)
	e.comments = NewCommentService(repositories.NewCommentRepository(db), e.userRepo, e.projRepo, e.taskRepo)
	e.users = NewUserService(e.userRepo, false)
	return e
}

// owner creates a user and a project with fixed ids
func (e *env) owner(t *testing.T, userID, projectID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.userRepo.Create(ctx, &models.User{ID: userID, Email: userID + "@example.com", Password: "password123", Name: "Owner"}))
	require.NoError(t, e.projRepo.Create(ctx, &models.Project{ID: projectID, Name: "Project " + projectID, OwnerID: userID}))
}

func (e *env) logCount(t *testing.T, criteria repositories.ActivityCriteria) int64 {
	t.Helper()
	n, err := e.logRepo.Count(context.Background(), criteria)
	require.NoError(t, err)
	return n
}
