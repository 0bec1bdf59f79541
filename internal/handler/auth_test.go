package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	assert "github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/config"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/repository"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/utils"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("a@b.co"))
	assert.True(t, validEmail("first.last+tag@sub.example.com"))
	assert.False(t, validEmail("no-at-sign"))
	assert.False(t, validEmail("a@b"))
	assert.False(t, validEmail("a b@c.d"))
	assert.False(t, validEmail("@c.d"))
}

func errDuplicate() error { return errors.New("Error 1062 (23000): Duplicate entry") }

func errFKViolation() error {
	return errors.New("Error 1452 (23000): Cannot add or update a child row")
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func TestRegisterInvalidEmail(t *testing.T) {
	h, _ := newAuthHandler(t)
	c, rec := newIssueCtx(t, http.MethodPost, "/auth/register",
		`{"user_email":"not-an-email","user_password":"pw"}`, "")

	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterMissingPassword(t *testing.T) {
	h, _ := newAuthHandler(t)
	c, rec := newIssueCtx(t, http.MethodPost, "/auth/register",
		`{"user_email":"a@b.co"}`, "")

	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errDuplicate())

	c, rec := newIssueCtx(t, http.MethodPost, "/auth/register",
		`{"user_email":"a@b.co","user_password":"pw"}`, "")

	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterSuccess(t *testing.T) {
	h, mock := newAuthHandler(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_email", "user_password_hash", "created_at"}).
			AddRow("u1", "a@b.co", "hash", now))

	c, rec := newIssueCtx(t, http.MethodPost, "/auth/register",
		`{"user_email":"a@b.co","user_password":"pw"}`, "")

	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "refresh_token")
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmail(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_email").
		WillReturnError(sql.ErrNoRows)

	c, rec := newIssueCtx(t, http.MethodPost, "/auth/login",
		`{"user_email":"ghost@b.co","user_password":"pw"}`, "")

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := newAuthHandler(t)
	hash, err := utils.HashPassword("right", bcrypt.MinCost)
	assert.NoError(t, err)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_email").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_email", "user_password_hash", "created_at"}).
			AddRow("u1", "a@b.co", hash, now))

	c, rec := newIssueCtx(t, http.MethodPost, "/auth/login",
		`{"user_email":"a@b.co","user_password":"wrong"}`, "")

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	h, mock := newAuthHandler(t)
	hash, err := utils.HashPassword("right", bcrypt.MinCost)
	assert.NoError(t, err)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_email").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_email", "user_password_hash", "created_at"}).
			AddRow("u1", "a@b.co", hash, now))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newIssueCtx(t, http.MethodPost, "/auth/login",
		`{"user_email":"a@b.co","user_password":"right"}`, "")

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
	assert.Contains(t, rec.Body.String(), "refresh_token")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshUnknownToken(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectQuery("SELECT user_id, expires_at FROM refresh_tokens").
		WillReturnError(sql.ErrNoRows)

	c, rec := newIssueCtx(t, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"deadbeef"}`, "")

	assert.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyTokenValid(t *testing.T) {
	h, _ := newAuthHandler(t)
	tok, err := utils.NewAccessToken("test-secret", "u1", 15)
	assert.NoError(t, err)

	c, rec := newIssueCtx(t, http.MethodGet, "/token/verify", "", "")
	c.Request().Header.Set("Authorization", "Bearer "+tok.Token)

	assert.NoError(t, h.VerifyToken(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Valid token")
}

func TestVerifyTokenInvalid(t *testing.T) {
	h, _ := newAuthHandler(t)
	c, rec := newIssueCtx(t, http.MethodGet, "/token/verify", "", "")
	c.Request().Header.Set("Authorization", "Bearer garbage")

	assert.NoError(t, h.VerifyToken(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
