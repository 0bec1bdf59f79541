package model

import "time"

// Issue statuses accepted by the `issues.issue_status` column.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

// Issue priorities accepted by the `issues.issue_priority` column.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is one of the allowed issue statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the allowed issue priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Issue mirrors a row of the `issues` table.
//
// Fields:
//  ID         – UUID primary key.
//  Details    – free-text description of the work item.
//  Status     – one of the Status* constants.
//  Priority   – one of the Priority* constants.
//  CreatedBy  – user who created the issue; never changes.
//  AssignedTo – user assigned to the issue (nil when unassigned).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Issue struct {
	ID         string    // issues.issue_id
	Details    string    // issues.issue_details
	Status     string    // issues.issue_status
	Priority   string    // issues.issue_priority
	CreatedBy  string    // issues.created_by
	AssignedTo *string   // issues.assigned_to (nullable)
	CreatedAt  time.Time // issues.created_at
	UpdatedAt  time.Time // issues.updated_at
}

// Label mirrors a row of the `labels` table. Label names are
// unique per owning user, not globally.
type Label struct {
	ID        string    // labels.label_id
	Name      string    // labels.label_name
	UserID    string    // labels.user_id (owner)
	CreatedAt time.Time // labels.created_at
}

// Comment mirrors a row of the `comments` table.
type Comment struct {
	ID        string    // comments.comment_id
	IssueID   string    // comments.issue_id
	UserID    string    // comments.user_id (author)
	Details   string    // comments.comment_details
	CreatedAt time.Time // comments.created_at
}
