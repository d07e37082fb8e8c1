package model

import "time"

// Category classifies an issue into one of the fixed civic problem areas.
type Category string

const (
	CategoryRoads        Category = "roads"
	CategoryLighting     Category = "lighting"
	CategoryWater        Category = "water"
	CategoryCleanliness  Category = "cleanliness"
	CategorySafety       Category = "safety"
	CategoryObstructions Category = "obstructions"
)

// Categories lists every valid issue category.
var Categories = []Category{
	CategoryRoads,
	CategoryLighting,
	CategoryWater,
	CategoryCleanliness,
	CategorySafety,
	CategoryObstructions,
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the workflow state of an issue. All transitions are allowed; the
// workflow is operator-driven, not a strict lifecycle.
type Status string

const (
	StatusReported Status = "reported"
	StatusProgress Status = "progress"
	StatusResolved Status = "resolved"
)

// Statuses lists every valid issue status.
var Statuses = []Status{StatusReported, StatusProgress, StatusResolved}

// Valid reports whether s is a member of the fixed status set.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// DefaultReporterID is attributed to submissions that carry no reporter.
const DefaultReporterID = "anonymous"

// TimeLayout is the timestamp format used on the wire.
const TimeLayout = "2006-01-02 15:04:05"

// Issue represents a reported civic problem.
type Issue struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Category    Category  `json:"category" gorm:"size:50;not null;index"`
	Location    string    `json:"location" gorm:"size:200;not null"`
	Status      Status    `json:"status" gorm:"size:20;not null;default:'reported';index"`
	Votes       int       `json:"votes" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	ReporterID  string    `json:"-" gorm:"size:100;not null;default:'anonymous';index"`
}

// IssueResponse is the wire shape of an issue. Timestamps are formatted, and
// the reporter identity is never exposed.
type IssueResponse struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Location    string   `json:"location"`
	Status      Status   `json:"status"`
	Votes       int      `json:"votes"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Response converts an issue to its wire shape.
func (i *Issue) Response() IssueResponse {
	return IssueResponse{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		Category:    i.Category,
		Location:    i.Location,
		Status:      i.Status,
		Votes:       i.Votes,
		CreatedAt:   i.CreatedAt.Format(TimeLayout),
		UpdatedAt:   i.UpdatedAt.Format(TimeLayout),
		Latitude:    i.Latitude,
		Longitude:   i.Longitude,
	}
}
