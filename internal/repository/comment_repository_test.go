package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	assert "github.com/stretchr/testify/require"
)

func TestCommentRepoCreateMissingIssue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepo(db)

	mock.ExpectExec("INSERT INTO comments").
		WillReturnError(errors.New("Error 1452 (23000): Cannot add or update a child row"))

	_, err := repo.Create(context.Background(), "ghost", "text", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentRepoUpdateNotAuthor(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepo(db)

	// A foreign author hits zero rows on the combined WHERE clause.
	mock.ExpectExec("UPDATE comments SET comment_details").
		WithArgs("new text", "c1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), "c1", "new text", "intruder")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Re-saving a comment with identical text must succeed. The connection is
// opened with clientFoundRows, so the driver reports the matched row even
// though nothing changed; only a genuinely unmatched WHERE yields zero.
func TestCommentRepoUpdateSameText(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepo(db)
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE comments SET comment_details").
		WithArgs("unchanged", "c1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT comment_id, issue_id, user_id, comment_details, created_at FROM comments WHERE comment_id").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "issue_id", "user_id", "comment_details", "created_at"}).
			AddRow("c1", "i1", "u1", "unchanged", now))

	out, err := repo.Update(context.Background(), "c1", "unchanged", "u1")
	assert.NoError(t, err)
	assert.Equal(t, "unchanged", out.Details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepoDeleteNotAuthor(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepo(db)

	mock.ExpectExec("DELETE FROM comments").
		WithArgs("c1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "c1", "intruder")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentRepoListByIssue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT comment_id, issue_id, user_id, comment_details, created_at FROM comments WHERE issue_id").
		WithArgs("i1").
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "issue_id", "user_id", "comment_details", "created_at"}).
			AddRow("c2", "i1", "u2", "newer", now).
			AddRow("c1", "i1", "u1", "older", now.Add(-time.Hour)))

	out, err := repo.ListByIssue(context.Background(), "i1")
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "c2", out[0].ID)
}
