package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"civictrack/internal/model"
)

func TestIssueResponse_FormatsTimestamps(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 30, 5, 123456789, time.UTC)
	updated := time.Date(2024, 5, 2, 18, 0, 59, 0, time.UTC)

	issue := &model.Issue{
		ID:          17,
		Title:       "Large pothole on Main Street",
		Description: "Deep pothole causing traffic issues",
		Category:    model.CategoryRoads,
		Location:    "Main Street near City Hall",
		Status:      model.StatusReported,
		Votes:       12,
		CreatedAt:   created,
		UpdatedAt:   updated,
		ReporterID:  "user_abc123",
	}

	resp := issue.Response()

	assert.Equal(t, uint(17), resp.ID)
	assert.Equal(t, "2024-05-01 09:30:05", resp.CreatedAt)
	assert.Equal(t, "2024-05-02 18:00:59", resp.UpdatedAt)
	assert.Nil(t, resp.Latitude)
	assert.Nil(t, resp.Longitude)
}

func TestIssueResponse_CarriesCoordinates(t *testing.T) {
	lat, lng := 40.7128, -74.006
	issue := &model.Issue{Latitude: &lat, Longitude: &lng}

	resp := issue.Response()

	assert.Equal(t, &lat, resp.Latitude)
	assert.Equal(t, &lng, resp.Longitude)
}

func TestCategory_Valid(t *testing.T) {
	for _, category := range model.Categories {
		assert.True(t, category.Valid(), "category %q should be valid", category)
	}
	assert.False(t, model.Category("potholes").Valid())
	assert.False(t, model.Category("").Valid())
	assert.False(t, model.Category("Roads").Valid(), "membership is case sensitive")
}

func TestStatus_Valid(t *testing.T) {
	for _, status := range model.Statuses {
		assert.True(t, status.Valid(), "status %q should be valid", status)
	}
	assert.False(t, model.Status("bogus").Valid())
	assert.False(t, model.Status("").Valid())
	assert.False(t, model.Status("in progress").Valid())
}
