package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "civictrack/internal/errors"
	"civictrack/internal/model"
	"civictrack/internal/service"
)

// MockIssueService is a mock implementation of service.IssueService.
type MockIssueService struct {
	mock.Mock
}

func (m *MockIssueService) Create(ctx context.Context, input service.CreateIssueInput) (*model.Issue, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueService) List(ctx context.Context) ([]model.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Issue), args.Error(1)
}

func (m *MockIssueService) Vote(ctx context.Context, id uint, userID string) (int, error) {
	args := m.Called(ctx, id, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockIssueService) SetStatus(ctx context.Context, id uint, status string) (*model.Issue, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueService) Stats(ctx context.Context) (*service.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Stats), args.Error(1)
}

func (m *MockIssueService) SeedSampleIssues(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func sampleIssue() *model.Issue {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &model.Issue{
		ID:          1,
		Title:       "Large pothole on Main Street",
		Description: "Deep pothole causing traffic issues",
		Category:    model.CategoryRoads,
		Location:    "Main Street near City Hall",
		Status:      model.StatusReported,
		Votes:       1,
		CreatedAt:   now,
		UpdatedAt:   now,
		ReporterID:  model.DefaultReporterID,
	}
}

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestIssueHandler_CreateIssue(t *testing.T) {
	t.Run("valid payload returns 201 with the new id", func(t *testing.T) {
		svc := new(MockIssueService)
		svc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateIssueInput")).Return(sampleIssue(), nil)
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPost, "/api/issues",
			`{"title":"Large pothole on Main Street","description":"Deep pothole causing traffic issues","category":"roads","location":"Main Street near City Hall"}`)

		assert.NoError(t, h.CreateIssue(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "Issue created successfully", body["message"])
		assert.Equal(t, float64(1), body["id"])
		issue := body["issue"].(map[string]interface{})
		assert.Equal(t, "2024-05-01 12:00:00", issue["created_at"])
		assert.NotContains(t, issue, "reporter_id")
	})

	t.Run("missing field returns 400 naming the field", func(t *testing.T) {
		svc := new(MockIssueService)
		svc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateIssueInput")).
			Return(nil, apperrors.NewMissingField("title"))
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPost, "/api/issues", `{"description":"x","category":"roads","location":"y"}`)

		assert.NoError(t, h.CreateIssue(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "title is required", decodeBody(t, rec)["error"])
	})

	t.Run("invalid category returns 400", func(t *testing.T) {
		svc := new(MockIssueService)
		svc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateIssueInput")).
			Return(nil, apperrors.ErrInvalidCategory)
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPost, "/api/issues",
			`{"title":"t","description":"d","category":"potholes","location":"l"}`)

		assert.NoError(t, h.CreateIssue(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid category", decodeBody(t, rec)["error"])
	})

	t.Run("store failure returns the fixed 500 body", func(t *testing.T) {
		svc := new(MockIssueService)
		svc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateIssueInput")).
			Return(nil, assert.AnError)
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPost, "/api/issues",
			`{"title":"t","description":"d","category":"roads","location":"l"}`)

		assert.NoError(t, h.CreateIssue(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to create issue", decodeBody(t, rec)["error"])
	})
}

func TestIssueHandler_ListIssues(t *testing.T) {
	svc := new(MockIssueService)
	newest := sampleIssue()
	newest.ID = 2
	newest.CreatedAt = newest.CreatedAt.Add(time.Hour)
	svc.On("List", mock.Anything).Return([]model.Issue{*newest, *sampleIssue()}, nil)
	h := NewIssueHandler(svc)

	c, rec := newContext(t, http.MethodGet, "/api/issues", "")

	assert.NoError(t, h.ListIssues(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var issues []map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issues))
	assert.Len(t, issues, 2)
	assert.Equal(t, float64(2), issues[0]["id"], "newest issue leads the feed")
}

func TestIssueHandler_VoteIssue(t *testing.T) {
	t.Run("vote returns the new count", func(t *testing.T) {
		svc := new(MockIssueService)
		svc.On("Vote", mock.Anything, uint(1), "user_xyz").Return(13, nil)
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPost, "/api/issues/1/vote", `{"user_id":"user_xyz"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")

		assert.NoError(t, h.VoteIssue(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "Vote recorded", body["message"])
		assert.Equal(t, float64(13), body["votes"])
	})

	t.Run("unknown issue returns 404", func(t *testing.T) {
		svc := new(MockIssueService)
		svc.On("Vote", mock.Anything, uint(999), "").Return(0, apperrors.ErrIssueNotFound)
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPost, "/api/issues/999/vote", "")
		c.SetParamNames("id")
		c.SetParamValues("999")

		assert.NoError(t, h.VoteIssue(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id returns 404 without a service call", func(t *testing.T) {
		svc := new(MockIssueService)
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPost, "/api/issues/abc/vote", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")

		assert.NoError(t, h.VoteIssue(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertNotCalled(t, "Vote", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestIssueHandler_UpdateStatus(t *testing.T) {
	t.Run("valid status returns the updated issue", func(t *testing.T) {
		resolved := sampleIssue()
		resolved.Status = model.StatusResolved
		svc := new(MockIssueService)
		svc.On("SetStatus", mock.Anything, uint(1), "resolved").Return(resolved, nil)
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPut, "/api/issues/1/status", `{"status":"resolved"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")

		assert.NoError(t, h.UpdateStatus(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "Status updated", body["message"])
		issue := body["issue"].(map[string]interface{})
		assert.Equal(t, "resolved", issue["status"])
	})

	t.Run("invalid status returns 400", func(t *testing.T) {
		svc := new(MockIssueService)
		svc.On("SetStatus", mock.Anything, uint(1), "bogus").Return(nil, apperrors.ErrInvalidStatus)
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPut, "/api/issues/1/status", `{"status":"bogus"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")

		assert.NoError(t, h.UpdateStatus(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid status", decodeBody(t, rec)["error"])
	})

	t.Run("unknown issue returns 404", func(t *testing.T) {
		svc := new(MockIssueService)
		svc.On("SetStatus", mock.Anything, uint(999), "progress").Return(nil, apperrors.ErrIssueNotFound)
		h := NewIssueHandler(svc)

		c, rec := newContext(t, http.MethodPut, "/api/issues/999/status", `{"status":"progress"}`)
		c.SetParamNames("id")
		c.SetParamValues("999")

		assert.NoError(t, h.UpdateStatus(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStatsHandler_GetStats(t *testing.T) {
	svc := new(MockIssueService)
	svc.On("Stats", mock.Anything).Return(&service.Stats{
		TotalIssues:    3,
		ResolvedIssues: 1,
		ActiveUsers:    1,
	}, nil)
	h := NewStatsHandler(svc)

	c, rec := newContext(t, http.MethodGet, "/api/stats", "")

	assert.NoError(t, h.GetStats(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["total_issues"])
	assert.Equal(t, float64(1), body["resolved_issues"])
	assert.Equal(t, float64(1), body["active_users"])
}
