package repository

import (
	"database/sql"
	"testing"
	"time"

	assert "github.com/stretchr/testify/require"
)

func ns(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func TestAggregateIssueRowsGroupsLabels(t *testing.T) {
	now := time.Now().UTC()
	rows := []issueRow{
		{IssueID: "i1", Details: "first", Status: "todo", Priority: "high",
			CreatedAt: now, UpdatedAt: now, CreatedBy: "u1",
			LabelID: ns("l1"), LabelName: ns("bug")},
		{IssueID: "i1", Details: "first", Status: "todo", Priority: "high",
			CreatedAt: now, UpdatedAt: now, CreatedBy: "u1",
			LabelID: ns("l2"), LabelName: ns("urgent")},
		{IssueID: "i2", Details: "second", Status: "done", Priority: "low",
			CreatedAt: now, UpdatedAt: now, CreatedBy: "u2"},
	}

	out := aggregateIssueRows(rows)
	assert.Len(t, out, 2)

	assert.Equal(t, "i1", out[0].IssueID)
	assert.Equal(t, []LabelRef{{"l1", "bug"}, {"l2", "urgent"}}, out[0].Labels)

	assert.Equal(t, "i2", out[1].IssueID)
	assert.Empty(t, out[1].Labels)
}

func TestAggregateIssueRowsDedupesLabels(t *testing.T) {
	rows := []issueRow{
		{IssueID: "i1", LabelID: ns("l1"), LabelName: ns("bug")},
		{IssueID: "i1", LabelID: ns("l1"), LabelName: ns("bug")},
	}
	out := aggregateIssueRows(rows)
	assert.Len(t, out, 1)
	assert.Len(t, out[0].Labels, 1)
}

func TestAggregateIssueRowsAssignee(t *testing.T) {
	rows := []issueRow{
		{IssueID: "i1", AssignedTo: ns("u2"), AssigneeEmail: ns("bob@example.com")},
		{IssueID: "i2", AssignedTo: ns("u3")},
		{IssueID: "i3"},
	}
	out := aggregateIssueRows(rows)
	assert.Len(t, out, 3)

	// Email wins when the join resolved one; raw id otherwise; nil when unassigned.
	assert.Equal(t, "bob@example.com", *out[0].AssignedTo)
	assert.Equal(t, "u3", *out[1].AssignedTo)
	assert.Nil(t, out[2].AssignedTo)
}

func TestAggregateIssueRowsPreservesOrder(t *testing.T) {
	rows := []issueRow{
		{IssueID: "b"},
		{IssueID: "a"},
		{IssueID: "b", LabelID: ns("l1"), LabelName: ns("x")},
	}
	out := aggregateIssueRows(rows)
	assert.Len(t, out, 2)
	assert.Equal(t, "b", out[0].IssueID)
	assert.Equal(t, "a", out[1].IssueID)
	assert.Len(t, out[0].Labels, 1)
}

func TestAggregateIssueRowsEmpty(t *testing.T) {
	assert.Empty(t, aggregateIssueRows(nil))
}
