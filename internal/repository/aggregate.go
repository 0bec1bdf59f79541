package repository

import (
	"database/sql"
	"time"
)

// issueRow is one row of the issues left-join used by GetByID and List:
// issue columns, the assignee's email (when resolvable) and at most one
// label. Issues with several labels repeat across rows.
type issueRow struct {
	IssueID       string
	Details       string
	Status        string
	Priority      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
	AssignedTo    sql.NullString
	AssigneeEmail sql.NullString
	LabelID       sql.NullString
	LabelName     sql.NullString
}

// LabelRef is a label attached to an issue in API responses.
type LabelRef struct {
	LabelID   string `json:"label_id"`
	LabelName string `json:"label_name"`
}

// IssueWithLabels is the aggregated API shape of an issue: the issue
// columns plus a deduplicated labels array. AssignedTo carries the
// assignee's email when the join resolved one, the raw user id otherwise,
// and nil when the issue is unassigned.
type IssueWithLabels struct {
	IssueID       string     `json:"issue_id"`
	IssueDetails  string     `json:"issue_details"`
	IssueStatus   string     `json:"issue_status"`
	IssuePriority string     `json:"issue_priority"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CreatedBy     string     `json:"created_by"`
	AssignedTo    *string    `json:"assigned_to"`
	Labels        []LabelRef `json:"labels"`
}

// aggregateIssueRows groups ordered join rows by issue id and collects each
// issue's labels as a deduplicated ordered slice. Row order is preserved:
// the first occurrence of an issue id fixes its position in the output.
func aggregateIssueRows(rows []issueRow) []IssueWithLabels {
	out := []IssueWithLabels{}
	index := map[string]int{}

	for _, row := range rows {
		i, seen := index[row.IssueID]
		if !seen {
			var assigned *string
			if row.AssigneeEmail.Valid {
				v := row.AssigneeEmail.String
				assigned = &v
			} else if row.AssignedTo.Valid {
				v := row.AssignedTo.String
				assigned = &v
			}
			out = append(out, IssueWithLabels{
				IssueID:       row.IssueID,
				IssueDetails:  row.Details,
				IssueStatus:   row.Status,
				IssuePriority: row.Priority,
				CreatedAt:     row.CreatedAt,
				UpdatedAt:     row.UpdatedAt,
				CreatedBy:     row.CreatedBy,
				AssignedTo:    assigned,
				Labels:        []LabelRef{},
			})
			i = len(out) - 1
			index[row.IssueID] = i
		}
		if !row.LabelID.Valid {
			continue
		}
		dup := false
		for _, l := range out[i].Labels {
			if l.LabelID == row.LabelID.String {
				dup = true
				break
			}
		}
		if !dup {
			out[i].Labels = append(out[i].Labels, LabelRef{
				LabelID:   row.LabelID.String,
				LabelName: row.LabelName.String,
			})
		}
	}
	return out
}
