package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/model"
)

type IssueRepo struct{ DB *sql.DB }

func NewIssueRepo(db *sql.DB) *IssueRepo { return &IssueRepo{DB: db} }

// issueJoinSelect is the shared left-join projection: issue columns, the
// assignee's email and the label pair. Issues with several labels come back
// as repeated rows; callers aggregate with aggregateIssueRows.
const issueJoinSelect = `SELECT
		i.issue_id, i.issue_details, i.issue_status, i.issue_priority,
		i.created_at, i.updated_at, i.created_by, i.assigned_to,
		u.user_email, l.label_id, l.label_name
	FROM issues i
	LEFT JOIN users u ON u.user_id = i.assigned_to
	LEFT JOIN issue_labels il ON il.issue_id = i.issue_id
	LEFT JOIN labels l ON l.label_id = il.label_id`

func scanIssueRows(rows *sql.Rows) ([]issueRow, error) {
	out := []issueRow{}
	for rows.Next() {
		var r issueRow
		if err := rows.Scan(
			&r.IssueID, &r.Details, &r.Status, &r.Priority,
			&r.CreatedAt, &r.UpdatedAt, &r.CreatedBy, &r.AssignedTo,
			&r.AssigneeEmail, &r.LabelID, &r.LabelName,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Create inserts a new issue and returns its aggregated form.
func (r *IssueRepo) Create(ctx context.Context, details, status, priority, createdBy string, assignedTo *string) (IssueWithLabels, error) {
	id := uuid.NewString()
	var assigned any
	if assignedTo != nil {
		assigned = *assignedTo
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO issues (issue_id, issue_details, issue_status, issue_priority, created_by, assigned_to) VALUES (?,?,?,?,?,?)",
		id, details, status, priority, createdBy, assigned)
	if err != nil {
		if isFKViolation(err) {
			return IssueWithLabels{}, ErrUserMissing
		}
		return IssueWithLabels{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches one issue with its labels aggregated, or ErrNotFound.
func (r *IssueRepo) GetByID(ctx context.Context, id string) (IssueWithLabels, error) {
	rows, err := r.DB.QueryContext(ctx,
		issueJoinSelect+" WHERE i.issue_id = ? ORDER BY l.label_id", id)
	if err != nil {
		return IssueWithLabels{}, err
	}
	defer rows.Close()

	raw, err := scanIssueRows(rows)
	if err != nil {
		return IssueWithLabels{}, err
	}
	agg := aggregateIssueRows(raw)
	if len(agg) == 0 {
		return IssueWithLabels{}, ErrNotFound
	}
	return agg[0], nil
}

// getLite reads the bare issue row without joins. Used for ownership and
// existence checks before mutations.
func (r *IssueRepo) getLite(ctx context.Context, id string) (model.Issue, error) {
	var (
		iss      model.Issue
		assigned sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT issue_id, issue_details, issue_status, issue_priority, created_by, assigned_to, created_at, updated_at FROM issues WHERE issue_id=? LIMIT 1",
		id).Scan(&iss.ID, &iss.Details, &iss.Status, &iss.Priority, &iss.CreatedBy, &assigned, &iss.CreatedAt, &iss.UpdatedAt)
	if err == sql.ErrNoRows {
		return iss, ErrNotFound
	}
	if err != nil {
		return iss, err
	}
	if assigned.Valid {
		v := assigned.String
		iss.AssignedTo = &v
	}
	return iss, nil
}

// Exists reports whether an issue row with the given id is present.
func (r *IssueRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM issues WHERE issue_id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update applies a partial update to an issue owned by requesterID. Nil
// fields keep their current value. The existence read distinguishes
// ErrNotFound from ErrForbidden; the UPDATE itself repeats the owner
// condition so the write stays atomic with respect to ownership.
func (r *IssueRepo) Update(ctx context.Context, id, requesterID string, details, status, priority, assignedTo *string) (IssueWithLabels, error) {
	current, err := r.getLite(ctx, id)
	if err != nil {
		return IssueWithLabels{}, err
	}
	if current.CreatedBy != requesterID {
		return IssueWithLabels{}, ErrForbidden
	}

	var newAssigned any
	hasAssigned := assignedTo != nil
	if hasAssigned {
		newAssigned = *assignedTo
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE issues SET
			issue_details  = COALESCE(?, issue_details),
			issue_status   = COALESCE(?, issue_status),
			issue_priority = COALESCE(?, issue_priority),
			assigned_to    = CASE WHEN ? THEN ? ELSE assigned_to END,
			updated_at     = CURRENT_TIMESTAMP
		WHERE issue_id=? AND created_by=?`,
		details, status, priority, hasAssigned, newAssigned, id, requesterID)
	if err != nil {
		if isFKViolation(err) {
			return IssueWithLabels{}, ErrUserMissing
		}
		return IssueWithLabels{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an issue owned by requesterID. Same ownership semantics
// as Update; cascades clear issue_labels and comments.
func (r *IssueRepo) Delete(ctx context.Context, id, requesterID string) error {
	current, err := r.getLite(ctx, id)
	if err != nil {
		return err
	}
	if current.CreatedBy != requesterID {
		return ErrForbidden
	}
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM issues WHERE issue_id=? AND created_by=?", id, requesterID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Row vanished between the read and the delete.
		return ErrNotFound
	}
	return nil
}
