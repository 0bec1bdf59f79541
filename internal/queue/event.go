// Package queue defines message payloads exchanged over the message broker.
package queue

// Issue lifecycle actions carried by IssueEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// IssueEvent is published after an issue mutation succeeds. It carries
// enough for downstream consumers to log, notify or feed analytics without
// querying the primary database.
type IssueEvent struct {
	Action     string `json:"action"`
	IssueID    string `json:"issue_id"`
	ActorID    string `json:"actor_id"`
	Status     string `json:"status,omitempty"`
	Priority   string `json:"priority,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
