package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/model"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/queue"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/repository"
	queue_publisher "github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/service"
)

// IssueHandler bundles dependencies for the issue endpoints.
type IssueHandler struct {
	Issues *repository.IssueRepo
	Users  *repository.UserRepo
	Log    zerolog.Logger
}

func NewIssueHandler(i *repository.IssueRepo, u *repository.UserRepo, log zerolog.Logger) *IssueHandler {
	return &IssueHandler{Issues: i, Users: u, Log: log}
}

type createIssueReq struct {
	Details    string  `json:"issue_details"`
	Status     string  `json:"issue_status"`
	Priority   string  `json:"issue_priority"`
	AssignedTo *string `json:"assigned_to"`
}

type updateIssueReq struct {
	IssueID    string  `json:"issue_id"`
	Details    *string `json:"issue_details"`
	Status     *string `json:"issue_status"`
	Priority   *string `json:"issue_priority"`
	AssignedTo *string `json:"assigned_to"`
}

// Create handles POST /issue/add. The creator is the authenticated user;
// an optional assignee must reference an existing user.
func (h *IssueHandler) Create(c echo.Context) error {
	requester, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createIssueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Details = strings.TrimSpace(req.Details)
	if req.Details == "" || req.Status == "" || req.Priority == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_details, issue_status and issue_priority are required"})
	}
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid issue_status"})
	}
	if !model.ValidPriority(req.Priority) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid issue_priority"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.AssignedTo != nil {
		ok, err := h.Users.Exists(ctx, *req.AssignedTo)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "assigned user does not exist"})
		}
	}

	issue, err := h.Issues.Create(ctx, req.Details, req.Status, req.Priority, requester, req.AssignedTo)
	if err != nil {
		if errors.Is(err, repository.ErrUserMissing) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create issue failed"})
	}

	h.publishIssueEvent(queue.ActionCreated, issue.IssueID, requester, issue.IssueStatus, issue.IssuePriority)
	return c.JSON(http.StatusCreated, issue)
}

// GetByID handles GET /issue/by_id?issue_id=... and returns the issue with
// its aggregated labels array.
func (h *IssueHandler) GetByID(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("issue_id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	issue, err := h.Issues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "issue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, issue)
}

// List handles GET /issue/all with pagination and either a label filter or
// free search/status/priority filters.
func (h *IssueHandler) List(c echo.Context) error {
	limit := clampLimit(c.QueryParam("limit"))
	page := clampPage(c.QueryParam("page"))

	q := repository.IssueSearchQuery{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		LabelID:  c.QueryParam("label"),
		Page:     page,
		Limit:    limit,
	}
	if q.Status != "" && !model.ValidStatus(q.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	if q.Priority != "" && !model.ValidPriority(q.Priority) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid priority filter"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	issues, total, err := h.Issues.List(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": issues,
		"meta": echo.Map{"page": page, "limit": limit, "total": total},
	})
}

// Update handles PUT /issue/update. Owner-only; absent fields keep their
// current values.
func (h *IssueHandler) Update(c echo.Context) error {
	requester, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateIssueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.IssueID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_id is required"})
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid issue_status"})
	}
	if req.Priority != nil && !model.ValidPriority(*req.Priority) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid issue_priority"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.AssignedTo != nil {
		ok, err := h.Users.Exists(ctx, *req.AssignedTo)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "assigned user does not exist"})
		}
	}

	issue, err := h.Issues.Update(ctx, req.IssueID, requester, req.Details, req.Status, req.Priority, req.AssignedTo)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "issue not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only update your own issues"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update issue failed"})
	}

	h.publishIssueEvent(queue.ActionUpdated, issue.IssueID, requester, issue.IssueStatus, issue.IssuePriority)
	return c.JSON(http.StatusOK, issue)
}

// Delete handles DELETE /issue/delete?issue_id=... Owner-only.
func (h *IssueHandler) Delete(c echo.Context) error {
	requester, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.QueryParam("issue_id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Issues.Delete(ctx, id, requester); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "issue not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only delete your own issues"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete issue failed"})
	}

	h.publishIssueEvent(queue.ActionDeleted, id, requester, "", "")
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// publishIssueEvent fires an event at the broker without blocking the
// request; the publisher logs its own failures.
func (h *IssueHandler) publishIssueEvent(action, issueID, actorID, status, priority string) {
	ev := queue.IssueEvent{
		Action:     action,
		IssueID:    issueID,
		ActorID:    actorID,
		Status:     status,
		Priority:   priority,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishIssueEvent(context.Background(), h.Log, ev) }()
}

// clampLimit parses the limit query param: default 10, floor 1, cap 100.
func clampLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 10
	}
	if n > 100 {
		return 100
	}
	return n
}

// clampPage parses the page query param: default 1, floor 1.
func clampPage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
