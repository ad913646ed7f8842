package tasks

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func sampleTask() *models.Task {
	now := time.Date(2026, 2, 5, 10, 30, 0, 0, time.UTC)
	return &models.Task{
		ID:        "1b9d6bcd-0000-4000-8000-000000000001",
		UserID:    "6d4de9a0-0000-4000-8000-000000000001",
		Title:     "Buy milk",
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreate(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)
	task := sampleTask()

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(task.ID, task.UserID, task.Title, task.Completed, task.CreatedAt, task.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), task))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT id, user_id, title, completed, created_at, updated_at FROM tasks").
		WithArgs("missing-id").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing-id")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByOwner_OrderedNewestFirst(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)
	task := sampleTask()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "completed", "created_at", "updated_at"}).
		AddRow("id-2", task.UserID, "second", false, task.CreatedAt.Add(time.Minute), task.UpdatedAt.Add(time.Minute)).
		AddRow("id-1", task.UserID, "first", true, task.CreatedAt, task.UpdatedAt)

	mock.ExpectQuery("ORDER BY created_at DESC, id DESC").
		WithArgs(task.UserID).
		WillReturnRows(rows)

	list, err := repo.ListByOwner(context.Background(), task.UserID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}

func TestListByOwner_Empty(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "completed", "created_at", "updated_at"})

	mock.ExpectQuery("SELECT id, user_id, title, completed, created_at, updated_at FROM tasks").
		WithArgs("user-x").
		WillReturnRows(rows)

	list, err := repo.ListByOwner(context.Background(), "user-x")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)
	task := sampleTask()

	mock.ExpectExec("UPDATE tasks SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), task)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "id-1"))

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs("id-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "id-2"), common.ErrorNotFound)
}
