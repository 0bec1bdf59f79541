// Package repository implements parameterized-SQL data access for the issue
// tracker. This file defines the sentinel errors shared across the
// repositories so that handlers can map failures to HTTP statuses with
// errors.Is instead of string matching.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when the requested row does not exist.
// Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts a mutation on a
// resource they do not own. Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned by UserRepo.Create when the email is already
// registered. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrLabelExists is returned when a (label_name, user_id) pair already
// exists. Handlers translate it into HTTP 409.
var ErrLabelExists = errors.New("label already exists for this user")

// ErrAlreadyAssigned is returned when an (issue_id, label_id) pair is
// already present in issue_labels. Handlers translate it into HTTP 409.
var ErrAlreadyAssigned = errors.New("label already assigned to issue")

// ErrNotAssigned is returned when unassigning a pair that does not exist.
var ErrNotAssigned = errors.New("label not assigned to issue")

// ErrUserMissing is returned when a referenced user (creator or assignee)
// does not exist.
var ErrUserMissing = errors.New("user does not exist")

// isDuplicate reports whether err is a MySQL duplicate-entry violation
// (error 1062 on a unique key).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKViolation reports whether err is a MySQL foreign-key failure
// (error 1452, no parent row).
func isFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
