package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge-api/database/dbtest"
	"github.com/taskforge-api/models"
	"github.com/taskforge-api/repositories"
)

func TestSeedIsRepeatable(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")
	seed := NewSeedService(e.userRepo, e.users, e.projects, e.tasks, dbtest.Logger())
	ctx := context.Background()

	first, err := seed.Run(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.UsersRemoved)
	assert.Equal(t, DemoUserEmail, first.User.Email)
	assert.Equal(t, DemoProjectName, first.Project.Name)
	require.Len(t, first.Tasks, 5)
	for _, task := range first.Tasks {
		assert.Equal(t, models.TaskStatusTodo, task.Status)
		assert.Equal(t, models.TaskPriorityMedium, task.Priority)
	}

	second, err := seed.Run(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, second.UsersRemoved)

	var tasks int64
	require.NoError(t, e.db.Model(&models.Task{}).Count(&tasks).Error)
	assert.EqualValues(t, 5, tasks)
	assert.EqualValues(t, 10, e.logCount(t, repositories.ActivityCriteria{Action: models.ActionCreateTask}))
}
