package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge-api/models"
)

func TestActivityLogOutlivesTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	project := f.project(t, owner.ID, "Website")
	task := f.task(t, project.ID, "Short lived")

	require.NoError(t, f.activity.Create(ctx, &models.ActivityLog{
		Action:    models.ActionCreateTask,
		TaskID:    &task.ID,
		ProjectID: &project.ID,
	}))
	_, err := f.tasks.Delete(ctx, task.ID)
	require.NoError(t, err)
	require.NoError(t, f.activity.Create(ctx, &models.ActivityLog{
		Action:    models.ActionDeleteTask,
		TaskID:    &task.ID,
		ProjectID: &project.ID,
	}))

	logs, total, err := f.activity.FindWithPagination(ctx, ActivityCriteria{TaskID: task.ID}, Page{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Nil(t, l.Task, "deleted task is not attached")
		require.NotNil(t, l.Project)
		assert.Equal(t, "Website", l.Project.Name)
	}
}

func TestActivityLogFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	project := f.project(t, owner.ID, "Website")
	task := f.task(t, project.ID, "One")

	for _, action := range []models.ActivityAction{models.ActionCreateTask, models.ActionUpdateTask, models.ActionUpdateTask} {
		require.NoError(t, f.activity.Create(ctx, &models.ActivityLog{
			Action:    action,
			TaskID:    &task.ID,
			ProjectID: &project.ID,
			UserID:    &owner.ID,
		}))
	}
	old := models.ActivityLog{Action: models.ActionUpdateTask, TaskID: &task.ID}
	require.NoError(t, f.activity.Create(ctx, &old))
	require.NoError(t, f.db.Model(&models.ActivityLog{}).Where("id = ?", old.ID).
		UpdateColumn("created_at", time.Now().UTC().AddDate(0, 0, -10)).Error)

	count, err := f.activity.Count(ctx, ActivityCriteria{Action: models.ActionUpdateTask})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	since := time.Now().UTC().AddDate(0, 0, -7)
	count, err = f.activity.Count(ctx, ActivityCriteria{CreatedAfter: &since})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	logs, _, err := f.activity.FindWithPagination(ctx, ActivityCriteria{UserID: owner.ID}, Page{Limit: 2})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.NotNil(t, logs[0].User)
	assert.Equal(t, owner.Email, logs[0].User.Email)
	require.NotNil(t, logs[0].Task)
	assert.Equal(t, "One", logs[0].Task.Title)
}
