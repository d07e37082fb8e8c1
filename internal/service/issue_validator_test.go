package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "civictrack/internal/errors"
	"civictrack/internal/model"
)

func validInput() CreateIssueInput {
	return CreateIssueInput{
		Title:       "Large pothole on Main Street",
		Description: "Deep pothole causing traffic issues",
		Category:    "roads",
		Location:    "Main Street near City Hall",
	}
}

func TestIssueValidator_ValidateCreate(t *testing.T) {
	v := NewIssueValidator()

	t.Run("valid payload is normalized", func(t *testing.T) {
		input := validInput()
		input.Title = "  Large pothole on Main Street  "
		input.Location = "\tMain Street near City Hall\n"

		record, err := v.ValidateCreate(input)

		assert.NoError(t, err)
		assert.Equal(t, "Large pothole on Main Street", record.Title)
		assert.Equal(t, "Main Street near City Hall", record.Location)
		assert.Equal(t, model.CategoryRoads, record.Category)
		assert.Equal(t, model.DefaultReporterID, record.ReporterID)
	})

	t.Run("reporter id passes through verbatim", func(t *testing.T) {
		input := validInput()
		input.ReporterID = "  user_abc123 "

		record, err := v.ValidateCreate(input)

		assert.NoError(t, err)
		assert.Equal(t, "  user_abc123 ", record.ReporterID)
	})

	t.Run("coordinates pass through", func(t *testing.T) {
		lat, lng := 40.7128, -74.006
		input := validInput()
		input.Latitude = &lat
		input.Longitude = &lng

		record, err := v.ValidateCreate(input)

		assert.NoError(t, err)
		assert.Equal(t, &lat, record.Latitude)
		assert.Equal(t, &lng, record.Longitude)
	})
}

func TestIssueValidator_RequiredFields(t *testing.T) {
	v := NewIssueValidator()

	tests := []struct {
		name   string
		mutate func(*CreateIssueInput)
		field  string
	}{
		{"missing title", func(in *CreateIssueInput) { in.Title = "" }, "title"},
		{"blank title", func(in *CreateIssueInput) { in.Title = "   " }, "title"},
		{"missing description", func(in *CreateIssueInput) { in.Description = "" }, "description"},
		{"blank description", func(in *CreateIssueInput) { in.Description = "\t\n" }, "description"},
		{"missing category", func(in *CreateIssueInput) { in.Category = "" }, "category"},
		{"missing location", func(in *CreateIssueInput) { in.Location = "" }, "location"},
		{"blank location", func(in *CreateIssueInput) { in.Location = "  " }, "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			record, err := v.ValidateCreate(input)

			assert.Nil(t, record)
			var missing *apperrors.MissingFieldError
			assert.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.field, missing.Field)
			assert.Equal(t, tt.field+" is required", err.Error())
		})
	}
}

func TestIssueValidator_Category(t *testing.T) {
	v := NewIssueValidator()

	t.Run("every known category is accepted", func(t *testing.T) {
		for _, category := range model.Categories {
			input := validInput()
			input.Category = "  " + string(category) + " "

			record, err := v.ValidateCreate(input)

			assert.NoError(t, err)
			assert.Equal(t, category, record.Category)
		}
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		input := validInput()
		input.Category = "potholes"

		record, err := v.ValidateCreate(input)

		assert.Nil(t, record)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
	})
}

func TestIssueValidator_Truncation(t *testing.T) {
	v := NewIssueValidator()

	input := validInput()
	input.Title = strings.Repeat("t", 500)
	input.Description = strings.Repeat("d", 2000)
	input.Location = strings.Repeat("l", 300)

	record, err := v.ValidateCreate(input)

	assert.NoError(t, err)
	assert.Len(t, record.Title, titleMaxLen)
	assert.Len(t, record.Description, descriptionMaxLen)
	assert.Len(t, record.Location, locationMaxLen)
}

func TestIssueValidator_TruncationCountsRunes(t *testing.T) {
	v := NewIssueValidator()

	input := validInput()
	input.Title = strings.Repeat("å", 250)

	record, err := v.ValidateCreate(input)

	assert.NoError(t, err)
	assert.Equal(t, titleMaxLen, len([]rune(record.Title)))
}
