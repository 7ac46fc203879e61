package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge-api/database/dbtest"
	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/models"
	"github.com/taskforge-api/repositories"
	"github.com/taskforge-api/utils"
)

func TestTaskCreateAppliesDefaultsAndRecords(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")
	ctx := context.Background()

	task, err := e.tasks.Create(ctx, models.Task{Title: "Write launch plan", ProjectID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusTodo, task.Status)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)
	assert.Equal(t, "p1", task.ProjectID)
	require.NotNil(t, task.Project)

	logs, err := e.activity.FindAllByEntity(ctx, dto.ActivityQuery{
		Pagination: dto.Pagination{Page: 1, Limit: 10},
		TaskID:     task.ID,
	})
	require.NoError(t, err)
	require.Len(t, logs.Data, 1)
	entry := logs.Data[0]
	assert.Equal(t, models.ActionCreateTask, entry.Action)
	assert.Equal(t, `Task "Write launch plan" created.`, utils.Deref(entry.Message))
	assert.Equal(t, task.ID, utils.Deref(entry.TaskID))
	assert.Equal(t, "p1", utils.Deref(entry.ProjectID))

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(entry.NewValue, &snapshot))
	assert.Equal(t, "Write launch plan", snapshot["title"])
}

func TestTaskCreateUnknownProject(t *testing.T) {
	e := newEnv(t)

	_, err := e.tasks.Create(context.Background(), models.Task{Title: "Orphan", ProjectID: "missing"})
	require.ErrorIs(t, err, ErrNotFound)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Project", nf.Entity)
	assert.Equal(t, "missing", nf.ID)
	assert.Zero(t, e.logCount(t, repositories.ActivityCriteria{}))
}

func TestTaskCreateUnknownAssignee(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")

	_, err := e.tasks.Create(context.Background(), models.Task{Title: "Hand off", ProjectID: "p1", AssigneeID: utils.Ptr("ghost")})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "User", nf.Entity)
	assert.Equal(t, "ghost", nf.ID)
}

func TestTaskUpdateMessages(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")
	ctx := context.Background()
	task, err := e.tasks.Create(ctx, models.Task{Title: "Ship it", ProjectID: "p1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		changes dto.Changes
		want    string
	}{
		{name: "status transition", changes: dto.Changes{"status": models.TaskStatusDone}, want: "Status changed from TODO → DONE."},
		{name: "same status", changes: dto.Changes{"status": models.TaskStatusDone}, want: "Task updated."},
		{name: "no status", changes: dto.Changes{"title": "Ship it today"}, want: "Task updated."},
		{name: "back again", changes: dto.Changes{"status": models.TaskStatusInProgress}, want: "Status changed from DONE → IN_PROGRESS."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.tasks.Update(ctx, task.ID, tt.changes)
			require.NoError(t, err)

			logs, err := e.activity.FindAllByEntity(ctx, dto.ActivityQuery{
				Pagination: dto.Pagination{Page: 1, Limit: 1},
				TaskID:     task.ID,
				Action:     models.ActionUpdateTask,
			})
			require.NoError(t, err)
			require.Len(t, logs.Data, 1)
			assert.Equal(t, tt.want, utils.Deref(logs.Data[0].Message))
		})
	}
	assert.EqualValues(t, 5, e.logCount(t, repositories.ActivityCriteria{TaskID: task.ID}))
}

func TestTaskUpdateSnapshotsChangedFields(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")
	ctx := context.Background()
	task, err := e.tasks.Create(ctx, models.Task{Title: "Before", ProjectID: "p1"})
	require.NoError(t, err)

	updated, err := e.tasks.Update(ctx, task.ID, dto.Changes{"title": "After"})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, models.TaskStatusTodo, updated.Status)

	logs, err := e.activity.FindAllByEntity(ctx, dto.ActivityQuery{
		Pagination: dto.Pagination{Page: 1, Limit: 10},
		Action:     models.ActionUpdateTask,
	})
	require.NoError(t, err)
	require.Len(t, logs.Data, 1)
	assert.JSONEq(t, `{"title":"Before"}`, string(logs.Data[0].OldValue))
	assert.JSONEq(t, `{"title":"After"}`, string(logs.Data[0].NewValue))
}

func TestTaskUpdateMissing(t *testing.T) {
	e := newEnv(t)

	_, err := e.tasks.Update(context.Background(), "missing", dto.Changes{"title": "x"})
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Task with ID missing not found")
	assert.Zero(t, e.logCount(t, repositories.ActivityCriteria{}))
}

func TestTaskUpdateToUnknownProject(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")
	ctx := context.Background()
	task, err := e.tasks.Create(ctx, models.Task{Title: "Move me", ProjectID: "p1"})
	require.NoError(t, err)

	_, err = e.tasks.Update(ctx, task.ID, dto.Changes{"project_id": "p404"})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Project", nf.Entity)
	assert.EqualValues(t, 1, e.logCount(t, repositories.ActivityCriteria{TaskID: task.ID}), "failed update records nothing")
}

func TestTaskRemove(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")
	ctx := context.Background()
	task, err := e.tasks.Create(ctx, models.Task{Title: "Temporary", ProjectID: "p1"})
	require.NoError(t, err)

	deleted, err := e.tasks.Remove(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, deleted.ID)

	_, err = e.tasks.FindOne(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	logs, err := e.activity.FindAllByEntity(ctx, dto.ActivityQuery{
		Pagination: dto.Pagination{Page: 1, Limit: 10},
		Action:     models.ActionDeleteTask,
	})
	require.NoError(t, err)
	require.Len(t, logs.Data, 1)
	assert.Equal(t, `Task "Temporary" deleted.`, utils.Deref(logs.Data[0].Message))
	assert.Equal(t, "p1", utils.Deref(logs.Data[0].ProjectID))
	assert.Nil(t, logs.Data[0].Task)
}

func TestTaskRemoveMissingRecordsNothing(t *testing.T) {
	e := newEnv(t)

	_, err := e.tasks.Remove(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, e.logCount(t, repositories.ActivityCriteria{}))
}

func TestTaskFindAllSecondPage(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		_, err := e.tasks.Create(ctx, models.Task{Title: fmt.Sprintf("Task %d", i), ProjectID: "p1"})
		require.NoError(t, err)
	}

	page, err := e.tasks.FindAll(ctx, dto.TaskQuery{Pagination: dto.Pagination{Page: 2, Limit: 10}})
	require.NoError(t, err)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, dto.Meta{Page: 2, Limit: 10, Total: 15, TotalPages: 2}, page.Meta)

	empty, err := e.tasks.FindAll(ctx, dto.TaskQuery{
		Pagination: dto.Pagination{Page: 1, Limit: 10},
		Status:     models.TaskStatusDone,
	})
	require.NoError(t, err)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
	assert.Zero(t, empty.Meta.TotalPages)
}

func TestTaskFindAllDaysWindow(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")
	ctx := context.Background()
	recent, err := e.tasks.Create(ctx, models.Task{Title: "recent", ProjectID: "p1"})
	require.NoError(t, err)
	stale, err := e.tasks.Create(ctx, models.Task{Title: "stale", ProjectID: "p1"})
	require.NoError(t, err)

	e.tasks.now = func() time.Time { return fixedNow }
	require.NoError(t, e.db.Model(&models.Task{}).Where("id = ?", recent.ID).UpdateColumn("updated_at", fixedNow.AddDate(0, 0, -1)).Error)
	require.NoError(t, e.db.Model(&models.Task{}).Where("id = ?", stale.ID).UpdateColumn("updated_at", fixedNow.AddDate(0, 0, -9)).Error)

	page, err := e.tasks.FindAll(ctx, dto.TaskQuery{Pagination: dto.Pagination{Page: 1, Limit: 10}, Days: 7})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "recent", page.Data[0].Title)

	for _, days := range []int{100_000, 200_000} {
		page, err = e.tasks.FindAll(ctx, dto.TaskQuery{Pagination: dto.Pagination{Page: 1, Limit: 10}, Days: days})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Meta.Total, "days=%d", days)
	}
}

type failingRecorder struct{ calls int }

func (f *failingRecorder) Record(context.Context, RecordInput) (models.ActivityLog, error) {
	f.calls++
	return models.ActivityLog{}, errors.New("activity table is gone")
}

func TestTaskMutationSurvivesAuditFailure(t *testing.T) {
	e := newEnv(t)
	e.owner(t, "u1", "p1")
	recorder := &failingRecorder{}
	tasks := NewTaskService(e.taskRepo, e.projRepo, recorder, dbtest.Logger())
	ctx := context.Background()

	task, err := tasks.Create(ctx, models.Task{Title: "Unaudited", ProjectID: "p1"})
	require.NoError(t, err)
	_, err = tasks.Update(ctx, task.ID, dto.Changes{"status": models.TaskStatusDone})
	require.NoError(t, err)
	_, err = tasks.Remove(ctx, task.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, recorder.calls)
	assert.Zero(t, e.logCount(t, repositories.ActivityCriteria{}))
}
