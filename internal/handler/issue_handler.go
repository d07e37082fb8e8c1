package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"civictrack/internal/errors"
	"civictrack/internal/model"
	"civictrack/internal/service"
)

// IssueHandler handles issue endpoints.
type IssueHandler struct {
	issueService service.IssueService
}

// NewIssueHandler creates a new issue handler.
func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// CreateIssueRequest represents an issue creation request.
type CreateIssueRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	ReporterID  string   `json:"reporter_id"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// CreateIssueResponse represents a successful creation response.
type CreateIssueResponse struct {
	Message string              `json:"message"`
	ID      uint                `json:"id"`
	Issue   model.IssueResponse `json:"issue"`
}

// VoteRequest represents a vote request. The user id only feeds the
// per-citizen vote counter; voting itself is anonymous.
type VoteRequest struct {
	UserID string `json:"user_id"`
}

// VoteResponse represents a successful vote response.
type VoteResponse struct {
	Message string `json:"message"`
	Votes   int    `json:"votes"`
}

// UpdateStatusRequest represents a status transition request.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse represents a successful status transition response.
type UpdateStatusResponse struct {
	Message string              `json:"message"`
	Issue   model.IssueResponse `json:"issue"`
}

// ListIssues godoc
// @Summary List all issues newest first
// @Tags issues
// @Produce json
// @Success 200 {array} model.IssueResponse
// @Router /issues [get]
func (h *IssueHandler) ListIssues(c echo.Context) error {
	issues, err := h.issueService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	responses := make([]model.IssueResponse, 0, len(issues))
	for i := range issues {
		responses = append(responses, issues[i].Response())
	}
	return c.JSON(http.StatusOK, responses)
}

// CreateIssue godoc
// @Summary Report a new issue
// @Tags issues
// @Accept json
// @Produce json
// @Param request body CreateIssueRequest true "Issue payload"
// @Success 201 {object} CreateIssueResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /issues [post]
func (h *IssueHandler) CreateIssue(c echo.Context) error {
	var req CreateIssueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	issue, err := h.issueService.Create(c.Request().Context(), service.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		ReporterID:  req.ReporterID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			httpErr.Message = "Failed to create issue"
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, CreateIssueResponse{
		Message: "Issue created successfully",
		ID:      issue.ID,
		Issue:   issue.Response(),
	})
}

// VoteIssue godoc
// @Summary Upvote an issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param request body VoteRequest false "Voter identity"
// @Success 200 {object} VoteResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /issues/{id}/vote [post]
func (h *IssueHandler) VoteIssue(c echo.Context) error {
	id, ok := issueID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrIssueNotFound.Error(),
			Code:  "ISSUE_NOT_FOUND",
		})
	}

	// The body is optional; a malformed one is treated as absent.
	var req VoteRequest
	_ = c.Bind(&req)

	votes, err := h.issueService.Vote(c.Request().Context(), id, req.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			httpErr.Message = "Failed to record vote"
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, VoteResponse{
		Message: "Vote recorded",
		Votes:   votes,
	})
}

// UpdateStatus godoc
// @Summary Change the workflow status of an issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} UpdateStatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /issues/{id}/status [put]
func (h *IssueHandler) UpdateStatus(c echo.Context) error {
	id, ok := issueID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrIssueNotFound.Error(),
			Code:  "ISSUE_NOT_FOUND",
		})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	issue, err := h.issueService.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			httpErr.Message = "Failed to update status"
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, UpdateStatusResponse{
		Message: "Status updated",
		Issue:   issue.Response(),
	})
}

// issueID parses the path id. A non-numeric id is indistinguishable from an
// unknown issue as far as the caller is concerned.
func issueID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
