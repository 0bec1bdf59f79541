package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	assert "github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserRepoCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "alice@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.Create(context.Background(), "  Alice@Example.COM ", "pw", bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))

	_, err := repo.Create(context.Background(), "alice@example.com", "pw", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepoGetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_email").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepoExists(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT 1 FROM users WHERE user_id").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM users WHERE user_id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	ok, err := repo.Exists(context.Background(), "u1")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.False(t, ok)
}
