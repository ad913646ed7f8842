package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
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

func sampleUser() *models.User {
	return &models.User{
		ID:           "6d4de9a0-0000-4000-8000-000000000001",
		Email:        "a@x.com",
		Name:         "Alice",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Date(2026, 2, 5, 10, 30, 0, 0, time.UTC),
	}
}

func TestCreate_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)
	u := sampleUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), u))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)
	u := sampleUser()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), u)
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGetByEmail_Found(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)
	u := sampleUser()

	rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
		AddRow(u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)

	mock.ExpectQuery("SELECT id, email, name, password_hash, created_at FROM users").
		WithArgs(u.Email).
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestGetByEmail_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT id, email, name, password_hash, created_at FROM users").
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT id, email, name, password_hash, created_at FROM users").
		WithArgs("missing-id").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing-id")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
