package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/model"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/repository"
)

// CommentHandler bundles dependencies for the comment endpoints.
type CommentHandler struct {
	Comments *repository.CommentRepo
}

func NewCommentHandler(cr *repository.CommentRepo) *CommentHandler {
	return &CommentHandler{Comments: cr}
}

type commentReq struct {
	CommentID string `json:"comment_id"`
	IssueID   string `json:"issue_id"`
	Details   string `json:"comment_details"`
}

type commentResp struct {
	CommentID string    `json:"comment_id"`
	IssueID   string    `json:"issue_id"`
	UserID    string    `json:"user_id"`
	Details   string    `json:"comment_details"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentResp(m model.Comment) commentResp {
	return commentResp{CommentID: m.ID, IssueID: m.IssueID, UserID: m.UserID, Details: m.Details, CreatedAt: m.CreatedAt}
}

func toCommentResps(in []model.Comment) []commentResp {
	out := make([]commentResp, 0, len(in))
	for _, m := range in {
		out = append(out, toCommentResp(m))
	}
	return out
}

// Create handles POST /comment/add. The author is the authenticated user.
func (h *CommentHandler) Create(c echo.Context) error {
	requester, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Details = strings.TrimSpace(req.Details)
	if req.IssueID == "" || req.Details == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_id and comment_details are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comment, err := h.Comments.Create(ctx, req.IssueID, req.Details, requester)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "issue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comment failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": toCommentResp(comment)})
}

// Update handles PUT /comment/update. Author-only; a missing comment and a
// foreign author are both reported as not found.
func (h *CommentHandler) Update(c echo.Context) error {
	requester, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Details = strings.TrimSpace(req.Details)
	if req.CommentID == "" || req.Details == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment_id and comment_details are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comment, err := h.Comments.Update(ctx, req.CommentID, req.Details, requester)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update comment failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toCommentResp(comment)})
}

// Delete handles DELETE /comment/delete?comment_id=... Author-only.
func (h *CommentHandler) Delete(c echo.Context) error {
	requester, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.QueryParam("comment_id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Comments.Delete(ctx, id, requester); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete comment failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ListByIssue handles GET /comment/issue?issue_id=..., newest first.
func (h *CommentHandler) ListByIssue(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("issue_id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comments, err := h.Comments.ListByIssue(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toCommentResps(comments)})
}

// ListByUser handles GET /comment/user?user_id=..., newest first.
func (h *CommentHandler) ListByUser(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("user_id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comments, err := h.Comments.ListByUser(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toCommentResps(comments)})
}
