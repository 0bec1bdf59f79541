package repository

import (
	"context"
	"strings"
)

// IssueSearchQuery defines filters & pagination for listing issues.
// LabelID and the free filters (Search/Status/Priority) are mutually
// exclusive modes: when LabelID is set the other filters are ignored.
type IssueSearchQuery struct {
	Search   string
	Status   string
	Priority string
	LabelID  string
	Page     int
	Limit    int
}

// List returns one page of issues with their labels aggregated, plus the
// total count of issues matching the active filters.
//
// Both modes paginate on a subquery over bare issue ids first, then left-join
// the page back against users/issue_labels/labels so every matched issue
// carries its full labels array regardless of how many label rows it expands
// into.
func (r *IssueRepo) List(ctx context.Context, q IssueSearchQuery) ([]IssueWithLabels, int64, error) {
	limit := q.Limit
	offset := (q.Page - 1) * limit

	var (
		countSQL  string
		countArgs []any
		dataSQL   string
		dataArgs  []any
	)

	if q.LabelID != "" {
		countSQL = "SELECT COUNT(*) FROM issue_labels WHERE label_id=?"
		countArgs = []any{q.LabelID}

		dataSQL = issueJoinSelect + `
			WHERE i.issue_id IN (
				SELECT * FROM (
					SELECT i2.issue_id FROM issues i2
					JOIN issue_labels il2 ON il2.issue_id = i2.issue_id
					WHERE il2.label_id = ?
					ORDER BY i2.issue_id
					LIMIT ? OFFSET ?
				) AS page
			)
			ORDER BY i.issue_id, l.label_id`
		dataArgs = []any{q.LabelID, limit, offset}
	} else {
		where := []string{"LOWER(issue_details) LIKE ?"}
		args := []any{"%" + strings.ToLower(q.Search) + "%"}
		if q.Status != "" {
			where = append(where, "issue_status = ?")
			args = append(args, q.Status)
		}
		if q.Priority != "" {
			where = append(where, "issue_priority = ?")
			args = append(args, q.Priority)
		}
		cond := strings.Join(where, " AND ")

		countSQL = "SELECT COUNT(*) FROM issues WHERE " + cond
		countArgs = args

		dataSQL = issueJoinSelect + `
			WHERE i.issue_id IN (
				SELECT * FROM (
					SELECT issue_id FROM issues
					WHERE ` + cond + `
					ORDER BY issue_id
					LIMIT ? OFFSET ?
				) AS page
			)
			ORDER BY i.issue_id, l.label_id`
		dataArgs = append(append([]any{}, args...), limit, offset)
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	raw, err := scanIssueRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return aggregateIssueRows(raw), total, nil
}
