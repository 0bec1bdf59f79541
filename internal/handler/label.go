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

// LabelHandler bundles dependencies for the label endpoints.
type LabelHandler struct {
	Labels *repository.LabelRepo
}

func NewLabelHandler(l *repository.LabelRepo) *LabelHandler {
	return &LabelHandler{Labels: l}
}

type labelNameReq struct {
	LabelID   string `json:"label_id"`
	LabelName string `json:"label_name"`
}

type labelPairReq struct {
	IssueID string `json:"issue_id"`
	LabelID string `json:"label_id"`
}

type labelResp struct {
	LabelID   string    `json:"label_id"`
	LabelName string    `json:"label_name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toLabelResp(l model.Label) labelResp {
	return labelResp{LabelID: l.ID, LabelName: l.Name, UserID: l.UserID, CreatedAt: l.CreatedAt}
}

// Create handles POST /label/add. Names are unique per owner.
func (h *LabelHandler) Create(c echo.Context) error {
	requester, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req labelNameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.LabelName = strings.TrimSpace(req.LabelName)
	if req.LabelName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label_name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	label, err := h.Labels.Create(ctx, req.LabelName, requester)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLabelExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "label already exists"})
		case errors.Is(err, repository.ErrUserMissing):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create label failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": toLabelResp(label)})
}

// List handles GET /label/all. Every label is visible to every
// authenticated user.
func (h *LabelHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	labels, err := h.Labels.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]labelResp, 0, len(labels))
	for _, l := range labels {
		out = append(out, toLabelResp(l))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}

// Update handles PUT /label/update. Owner-only rename.
func (h *LabelHandler) Update(c echo.Context) error {
	requester, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req labelNameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.LabelName = strings.TrimSpace(req.LabelName)
	if req.LabelID == "" || req.LabelName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label_id and label_name are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	label, err := h.Labels.Rename(ctx, req.LabelID, requester, req.LabelName)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "label not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only update your own labels"})
		case errors.Is(err, repository.ErrLabelExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "label already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update label failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toLabelResp(label)})
}

// Delete handles DELETE /label/delete?label_id=... Owner-only; assignments
// to issues are removed by cascade.
func (h *LabelHandler) Delete(c echo.Context) error {
	requester, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.QueryParam("label_id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Labels.Delete(ctx, id, requester); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "label not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only delete your own labels"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete label failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Assign handles POST /label/assign. Any authenticated user may attach any
// label to any issue.
func (h *LabelHandler) Assign(c echo.Context) error {
	var req labelPairReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.IssueID == "" || req.LabelID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_id and label_id are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Labels.Assign(ctx, req.IssueID, req.LabelID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "issue or label not found"})
		case errors.Is(err, repository.ErrAlreadyAssigned):
			return c.JSON(http.StatusConflict, echo.Map{"error": "label already assigned to issue"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign label failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// Unassign handles POST /label/unassign.
func (h *LabelHandler) Unassign(c echo.Context) error {
	var req labelPairReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.IssueID == "" || req.LabelID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_id and label_id are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Labels.Unassign(ctx, req.IssueID, req.LabelID); err != nil {
		if errors.Is(err, repository.ErrNotAssigned) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "label is not assigned to issue"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unassign label failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
