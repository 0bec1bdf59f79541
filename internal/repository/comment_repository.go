package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/model"
)

type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts a comment; ErrNotFound when the issue does not exist
// (surfaced by the FK instead of a separate read).
func (r *CommentRepo) Create(ctx context.Context, issueID, details, userID string) (model.Comment, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (comment_id, issue_id, user_id, comment_details) VALUES (?,?,?,?)",
		id, issueID, userID, details)
	if err != nil {
		if isFKViolation(err) {
			return model.Comment{}, ErrNotFound
		}
		return model.Comment{}, err
	}
	return r.getByID(ctx, id)
}

func (r *CommentRepo) getByID(ctx context.Context, id string) (model.Comment, error) {
	var c model.Comment
	err := r.DB.QueryRowContext(ctx,
		"SELECT comment_id, issue_id, user_id, comment_details, created_at FROM comments WHERE comment_id=? LIMIT 1",
		id).Scan(&c.ID, &c.IssueID, &c.UserID, &c.Details, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// Update rewrites a comment's text. The WHERE clause combines comment id
// and author, so a zero row count covers both "no such comment" and
// "not the author" and is reported as ErrNotFound.
func (r *CommentRepo) Update(ctx context.Context, commentID, details, userID string) (model.Comment, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE comments SET comment_details=? WHERE comment_id=? AND user_id=?",
		details, commentID, userID)
	if err != nil {
		return model.Comment{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Comment{}, err
	}
	if n == 0 {
		return model.Comment{}, ErrNotFound
	}
	return r.getByID(ctx, commentID)
}

// Delete removes a comment with the same combined author check as Update.
func (r *CommentRepo) Delete(ctx context.Context, commentID, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM comments WHERE comment_id=? AND user_id=?",
		commentID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByIssue returns an issue's comments, newest first.
func (r *CommentRepo) ListByIssue(ctx context.Context, issueID string) ([]model.Comment, error) {
	return r.list(ctx,
		"SELECT comment_id, issue_id, user_id, comment_details, created_at FROM comments WHERE issue_id=? ORDER BY created_at DESC",
		issueID)
}

// ListByUser returns a user's comments, newest first.
func (r *CommentRepo) ListByUser(ctx context.Context, userID string) ([]model.Comment, error) {
	return r.list(ctx,
		"SELECT comment_id, issue_id, user_id, comment_details, created_at FROM comments WHERE user_id=? ORDER BY created_at DESC",
		userID)
}

func (r *CommentRepo) list(ctx context.Context, query, arg string) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.IssueID, &c.UserID, &c.Details, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
