package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	assert "github.com/stretchr/testify/require"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/repository"
)

func newCommentHandler(t *testing.T) (*CommentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCommentHandler(repository.NewCommentRepo(db)), mock
}

func TestCommentCreateMissingFields(t *testing.T) {
	h, _ := newCommentHandler(t)
	c, rec := newIssueCtx(t, http.MethodPost, "/comment/add", `{"issue_id":"i1"}`, "u1")

	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentCreateMissingIssue(t *testing.T) {
	h, mock := newCommentHandler(t)
	mock.ExpectExec("INSERT INTO comments").
		WillReturnError(errFKViolation())

	c, rec := newIssueCtx(t, http.MethodPost, "/comment/add",
		`{"issue_id":"ghost","comment_details":"hi"}`, "u1")

	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentUpdateNotAuthor(t *testing.T) {
	h, mock := newCommentHandler(t)
	mock.ExpectExec("UPDATE comments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := newIssueCtx(t, http.MethodPut, "/comment/update",
		`{"comment_id":"c1","comment_details":"edit"}`, "intruder")

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentDeleteMissingParam(t *testing.T) {
	h, _ := newCommentHandler(t)
	c, rec := newIssueCtx(t, http.MethodDelete, "/comment/delete", "", "u1")

	assert.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentListByIssueMissingParam(t *testing.T) {
	h, _ := newCommentHandler(t)
	c, rec := newIssueCtx(t, http.MethodGet, "/comment/issue", "", "u1")

	assert.NoError(t, h.ListByIssue(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
