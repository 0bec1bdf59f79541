package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/model"
)

type LabelRepo struct{ DB *sql.DB }

func NewLabelRepo(db *sql.DB) *LabelRepo { return &LabelRepo{DB: db} }

// Create inserts a label owned by userID. Names are unique per owner, so
// the same name under a different owner is fine.
func (r *LabelRepo) Create(ctx context.Context, name, userID string) (model.Label, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO labels (label_id, label_name, user_id) VALUES (?,?,?)",
		id, name, userID)
	if err != nil {
		if isDuplicate(err) {
			return model.Label{}, ErrLabelExists
		}
		if isFKViolation(err) {
			return model.Label{}, ErrUserMissing
		}
		return model.Label{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches one label or ErrNotFound.
func (r *LabelRepo) GetByID(ctx context.Context, id string) (model.Label, error) {
	var l model.Label
	err := r.DB.QueryRowContext(ctx,
		"SELECT label_id, label_name, user_id, created_at FROM labels WHERE label_id=? LIMIT 1",
		id).Scan(&l.ID, &l.Name, &l.UserID, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return l, ErrNotFound
	}
	return l, err
}

// ListAll returns every label system-wide; labels are visible to all users
// even though only the owner may rename or delete them.
func (r *LabelRepo) ListAll(ctx context.Context) ([]model.Label, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT label_id, label_name, user_id, created_at FROM labels ORDER BY label_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Label{}
	for rows.Next() {
		var l model.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.UserID, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Rename changes a label's name for its owner. The existence read
// distinguishes ErrNotFound from ErrForbidden; the UPDATE repeats the owner
// condition.
func (r *LabelRepo) Rename(ctx context.Context, id, requesterID, name string) (model.Label, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Label{}, err
	}
	if current.UserID != requesterID {
		return model.Label{}, ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE labels SET label_name=? WHERE label_id=? AND user_id=?",
		name, id, requesterID)
	if err != nil {
		if isDuplicate(err) {
			return model.Label{}, ErrLabelExists
		}
		return model.Label{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a label owned by requesterID; cascades clear issue_labels.
func (r *LabelRepo) Delete(ctx context.Context, id, requesterID string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != requesterID {
		return ErrForbidden
	}
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM labels WHERE label_id=? AND user_id=?", id, requesterID)
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

// Assign attaches a label to an issue. Fails with ErrNotFound when either
// side is missing and ErrAlreadyAssigned when the pair exists. There is
// deliberately no ownership check: any authenticated user may label any
// issue with any label.
func (r *LabelRepo) Assign(ctx context.Context, issueID, labelID string) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM issues WHERE issue_id=? LIMIT 1", issueID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	err = r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM labels WHERE label_id=? LIMIT 1", labelID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO issue_labels (issue_id, label_id) VALUES (?,?)",
		issueID, labelID)
	if isDuplicate(err) {
		return ErrAlreadyAssigned
	}
	return err
}

// Unassign detaches a label from an issue; ErrNotAssigned when the pair
// does not exist.
func (r *LabelRepo) Unassign(ctx context.Context, issueID, labelID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM issue_labels WHERE issue_id=? AND label_id=?",
		issueID, labelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotAssigned
	}
	return nil
}
