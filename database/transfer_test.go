package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge-api/config"
	"github.com/taskforge-api/models"
	"gorm.io/gorm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memoryConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		URL:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}
}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(memoryConfig(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func newConnection(t *testing.T, name string) *Connection {
	t.Helper()
	conn, err := NewConnection(name, memoryConfig(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn.DB) })
	require.NoError(t, conn.Migrate())
	return conn
}

func TestTransferData(t *testing.T) {
	source := newConnection(t, "source")
	target := newConnection(t, "target")

	user := models.User{Email: "a@example.com", Password: "password123", Name: "A"}
	require.NoError(t, source.DB.Create(&user).Error)
	project := models.Project{Name: "P", OwnerID: user.ID}
	require.NoError(t, source.DB.Create(&project).Error)
	for i := 0; i < 7; i++ {
		task := models.Task{Title: fmt.Sprintf("T%d", i), Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, ProjectID: project.ID}
		require.NoError(t, source.DB.Create(&task).Error)
		require.NoError(t, source.DB.Create(&models.ActivityLog{Action: models.ActionCreateTask, TaskID: &task.ID}).Error)
	}
	require.NoError(t, source.DB.Create(&models.Comment{Content: "c", UserID: user.ID, ProjectID: &project.ID}).Error)

	stats, err := TransferData(context.Background(), source, target, 3, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, TransferStats{Users: 1, Projects: 1, Tasks: 7, Comments: 1, ActivityLogs: 7}, stats)

	var copied models.Task
	require.NoError(t, target.DB.Preload("Project").First(&copied, "title = ?", "T3").Error)
	assert.Equal(t, project.ID, copied.ProjectID)
	require.NotNil(t, copied.Project)
}

func TestTransferIntoUnmigratedTargetFails(t *testing.T) {
	source := newConnection(t, "source")
	require.NoError(t, source.DB.Create(&models.User{Email: "a@example.com", Password: "password123", Name: "A"}).Error)

	target, err := NewConnection("target", memoryConfig(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(target.DB) })

	_, err = TransferData(context.Background(), source, target, 10, discardLogger())
	assert.ErrorContains(t, err, "failed to transfer users")
}
