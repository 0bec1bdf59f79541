package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	assert "github.com/stretchr/testify/require"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/repository"
)

func newLabelHandler(t *testing.T) (*LabelHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLabelHandler(repository.NewLabelRepo(db)), mock
}

func TestLabelCreateMissingName(t *testing.T) {
	h, _ := newLabelHandler(t)
	c, rec := newIssueCtx(t, http.MethodPost, "/label/add", `{"label_name":"  "}`, "u1")

	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLabelCreateDuplicate(t *testing.T) {
	h, mock := newLabelHandler(t)
	mock.ExpectExec("INSERT INTO labels").WillReturnError(errDuplicate())

	c, rec := newIssueCtx(t, http.MethodPost, "/label/add", `{"label_name":"bug"}`, "u1")

	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLabelAssignMissingIDs(t *testing.T) {
	h, _ := newLabelHandler(t)
	c, rec := newIssueCtx(t, http.MethodPost, "/label/assign", `{"issue_id":"i1"}`, "u1")

	assert.NoError(t, h.Assign(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLabelAssignDuplicatePair(t *testing.T) {
	h, mock := newLabelHandler(t)
	mock.ExpectQuery("SELECT 1 FROM issues").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM labels").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("INSERT INTO issue_labels").WillReturnError(errDuplicate())

	c, rec := newIssueCtx(t, http.MethodPost, "/label/assign",
		`{"issue_id":"i1","label_id":"l1"}`, "u1")

	assert.NoError(t, h.Assign(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLabelUnassignNotAssigned(t *testing.T) {
	h, mock := newLabelHandler(t)
	mock.ExpectExec("DELETE FROM issue_labels").
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := newIssueCtx(t, http.MethodPost, "/label/unassign",
		`{"issue_id":"i1","label_id":"l1"}`, "u1")

	assert.NoError(t, h.Unassign(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLabelDeleteMissingParam(t *testing.T) {
	h, _ := newLabelHandler(t)
	c, rec := newIssueCtx(t, http.MethodDelete, "/label/delete", "", "u1")

	assert.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
