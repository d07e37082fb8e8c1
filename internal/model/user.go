package model

import "time"

// User tracks per-reporter aggregate counters. Rows are created lazily the
// first time a reporter id shows up on a write path; the counters are
// denormalized conveniences and are never read back on a request path.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"uniqueIndex;size:100;not null"`
	IssuesReported int       `json:"issues_reported" gorm:"not null;default:0"`
	VotesCast      int       `json:"votes_cast" gorm:"not null;default:0"`
	JoinedAt       time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
