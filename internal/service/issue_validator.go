package service

import (
	"strings"

	"civictrack/internal/errors"
	"civictrack/internal/model"
)

const (
	titleMaxLen       = 200
	descriptionMaxLen = 1000
	locationMaxLen    = 200
)

// CreateIssueInput is the raw creation payload before normalization.
type CreateIssueInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	ReporterID  string
	Latitude    *float64
	Longitude   *float64
}

// NewIssue is a normalized, validated issue-creation record.
type NewIssue struct {
	Title       string
	Description string
	Category    model.Category
	Location    string
	ReporterID  string
	Latitude    *float64
	Longitude   *float64
}

// IssueValidator normalizes and validates issue-creation payloads. It is a
// pure function of its input and performs no I/O.
type IssueValidator struct{}

// NewIssueValidator creates a new issue validator.
func NewIssueValidator() *IssueValidator {
	return &IssueValidator{}
}

// ValidateCreate checks required fields in a fixed order, trims and truncates
// the free-text fields, and verifies category membership. The reporter id
// passes through verbatim and defaults to "anonymous" when absent.
func (v *IssueValidator) ValidateCreate(input CreateIssueInput) (*NewIssue, error) {
	required := []struct {
		field string
		value string
	}{
		{"title", input.Title},
		{"description", input.Description},
		{"category", input.Category},
		{"location", input.Location},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, errors.NewMissingField(f.field)
		}
	}

	category := model.Category(strings.TrimSpace(input.Category))
	if !category.Valid() {
		return nil, errors.ErrInvalidCategory
	}

	reporterID := input.ReporterID
	if reporterID == "" {
		reporterID = model.DefaultReporterID
	}

	return &NewIssue{
		Title:       truncate(strings.TrimSpace(input.Title), titleMaxLen),
		Description: truncate(strings.TrimSpace(input.Description), descriptionMaxLen),
		Category:    category,
		Location:    truncate(strings.TrimSpace(input.Location), locationMaxLen),
		ReporterID:  reporterID,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}, nil
}

// truncate caps s at max characters, counting runes so multi-byte text is
// never split mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
