package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge-api/models"
)

func TestProjectFindByIDLoadsOwnerAndTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	project := f.project(t, owner.ID, "Website")
	f.task(t, project.ID, "One")
	f.task(t, project.ID, "Two")

	found, err := f.projects.FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Owner)
	assert.Equal(t, owner.Email, found.Owner.Email)
	assert.Len(t, found.Tasks, 2)

	exists, err := f.projects.Exists(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = f.projects.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProjectListOrderAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")
	older := f.project(t, alice.ID, "Older")
	f.project(t, alice.ID, "Newer")
	f.project(t, bob.ID, "Bob's")

	past := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, f.db.Model(&models.Project{}).Where("id = ?", older.ID).UpdateColumn("updated_at", past).Error)

	items, total, err := f.projects.FindWithPagination(ctx, ProjectCriteria{OwnerID: alice.ID}, Page{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Newer", items[0].Name)
	assert.Equal(t, "Older", items[1].Name)

	since := time.Now().UTC().Add(-24 * time.Hour)
	items, total, err = f.projects.FindWithPagination(ctx, ProjectCriteria{UpdatedAfter: &since}, Page{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)
}

func TestProjectUpdateAndDeleteCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	project := f.project(t, owner.ID, "Website")
	task := f.task(t, project.ID, "One")

	updated, err := f.projects.Update(ctx, project.ID, map[string]interface{}{"name": "Website v2"})
	require.NoError(t, err)
	assert.Equal(t, "Website v2", updated.Name)

	_, err = f.projects.Update(ctx, "missing", map[string]interface{}{"name": "x"})
	assert.True(t, IsNotFound(err))

	_, err = f.projects.Delete(ctx, project.ID)
	require.NoError(t, err)
	_, err = f.tasks.FindByID(ctx, task.ID)
	assert.True(t, IsNotFound(err))
}

func TestProjectCreateUnknownOwner(t *testing.T) {
	f := newFixture(t)
	err := f.projects.Create(context.Background(), &models.Project{Name: "Ghost", OwnerID: "nobody"})
	assert.True(t, IsForeignKeyViolation(err))
}
