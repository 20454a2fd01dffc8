package repository_test

import (
	"context"
	"testing"

	"workflowhub/internal/model"
	"workflowhub/internal/repository"
	"workflowhub/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_CRUD(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	project := &model.Project{
		Name:    "Launch",
		Status:  model.ProjectStatusPlanning,
		OwnerID: &owner.ID,
	}
	require.NoError(t, repo.Create(ctx, project))

	found, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Owner)
	assert.Equal(t, "owner", found.Owner.Name)

	require.NoError(t, repo.Update(ctx, project.ID, map[string]any{"status": model.ProjectStatusActive}))
	found, err = repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusActive, found.Status)

	assert.ErrorIs(t, repo.Update(ctx, uuid.New(), map[string]any{"name": "x"}), repository.ErrProjectNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)
	comments := repository.NewCommentRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "author")
	doomed := testutil.CreateProject(t, db, "Doomed", model.ProjectStatusActive)
	kept := testutil.CreateProject(t, db, "Kept", model.ProjectStatusActive)

	for _, p := range []*model.Project{doomed, kept} {
		for i := 0; i < 2; i++ {
			task := newTask(p.ID, "task")
			require.NoError(t, tasks.Create(ctx, task))
			require.NoError(t, comments.Create(ctx, &model.Comment{TaskID: task.ID, UserID: author.ID, Content: "hi"}))
		}
	}

	deleted, err := projects.Delete(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doomed", deleted.Name)

	var orphanTasks int64
	require.NoError(t, db.Model(&model.Task{}).Where("project_id = ?", doomed.ID).Count(&orphanTasks).Error)
	assert.Zero(t, orphanTasks)

	var remainingComments int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&remainingComments).Error)
	assert.Equal(t, int64(2), remainingComments, "only comments of the kept project remain")

	_, err = projects.Delete(ctx, doomed.ID)
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)
}

func TestProjectRepository_OwnerDeletionNullsReference(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProjectRepository(db)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	project := &model.Project{Name: "Orphan", Status: model.ProjectStatusActive, OwnerID: &owner.ID}
	require.NoError(t, repo.Create(ctx, project))

	require.NoError(t, users.Delete(ctx, owner.ID))

	found, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, found.OwnerID)
}

func TestProjectRepository_Delete_RowGoneBeforeDelete(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewProjectRepository(gormDB)
	id := uuid.New()

	// Строка прочитана под блокировкой, но параллельный запрос удалил её раньше нас
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectExec(`DELETE FROM "projects" WHERE id = `).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	deleted, err := repo.Delete(context.Background(), id)

	assert.ErrorIs(t, err, repository.ErrProjectNotFound)
	assert.Nil(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
