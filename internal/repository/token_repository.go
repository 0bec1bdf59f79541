package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/model"
)

// TokenRepo persists refresh tokens, one row per user. The table's primary
// key is user_id, so Upsert replaces any previous token for that user.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Upsert stores a refresh token hash for the user, overwriting the
// previous row if one exists.
func (r *TokenRepo) Upsert(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE token_hash=VALUES(token_hash), expires_at=VALUES(expires_at)`,
		userID, tokenHash, exp)
	return err
}

// ValidateByHash returns the owning user ID if a non-expired token with
// this hash exists, ErrNotFound otherwise.
func (r *TokenRepo) ValidateByHash(ctx context.Context, tokenHash string) (string, error) {
	var t model.RefreshToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&t.UserID, &t.ExpiresAt)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if time.Now().UTC().After(t.ExpiresAt) {
		return "", ErrNotFound
	}
	return t.UserID, nil
}

// DeleteByUserID removes the user's refresh token, ending the session.
func (r *TokenRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id=?", userID)
	return err
}
