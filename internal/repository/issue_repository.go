package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"civictrack/internal/model"
)

// IssueRepository defines issue persistence operations.
type IssueRepository interface {
	Create(ctx context.Context, issue *model.Issue) error
	CreateBatch(ctx context.Context, issues []model.Issue) error
	FindByID(ctx context.Context, id uint) (*model.Issue, error)
	List(ctx context.Context) ([]model.Issue, error)
	IncrementVotes(ctx context.Context, id uint, now time.Time) (int, error)
	UpdateStatus(ctx context.Context, id uint, status model.Status, now time.Time) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.Status) (int64, error)
	CountDistinctReporters(ctx context.Context) (int64, error)
}

type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository.
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

// Create inserts a new issue row.
func (r *issueRepository) Create(ctx context.Context, issue *model.Issue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

// CreateBatch inserts multiple issues in a single transaction.
func (r *issueRepository) CreateBatch(ctx context.Context, issues []model.Issue) error {
	if len(issues) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&issues).Error
}

// FindByID finds an issue by ID.
func (r *issueRepository) FindByID(ctx context.Context, id uint) (*model.Issue, error) {
	var issue model.Issue
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// List returns all issues newest first. Ties on created_at resolve by id so
// every collection yields the same order.
func (r *issueRepository) List(ctx context.Context) ([]model.Issue, error) {
	var issues []model.Issue
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// IncrementVotes bumps the vote counter by one inside a transaction and
// returns the new count. The increment runs as a single row-level UPDATE
// expression so concurrent votes on the same id never lose updates.
func (r *issueRepository) IncrementVotes(ctx context.Context, id uint, now time.Time) (int, error) {
	var votes int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Issue{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"votes":      gorm.Expr("votes + 1"),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var issue model.Issue
		if err := tx.Select("votes").Where("id = ?", id).First(&issue).Error; err != nil {
			return err
		}
		votes = issue.Votes
		return nil
	})
	if err != nil {
		return 0, err
	}
	return votes, nil
}

// UpdateStatus overwrites the status and refreshes updated_at. Existence is
// the caller's concern: a same-status update affects zero rows on MySQL, so
// RowsAffected cannot distinguish "missing" from "idempotent".
func (r *issueRepository) UpdateStatus(ctx context.Context, id uint, status model.Status, now time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Issue{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		}).Error
}

// Count returns the total number of issues.
func (r *issueRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Issue{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountByStatus returns the number of issues in the given status.
func (r *issueRepository) CountByStatus(ctx context.Context, status model.Status) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Issue{}).
		Where("status = ?", status).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountDistinctReporters returns the number of distinct reporter identities.
func (r *issueRepository) CountDistinctReporters(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Issue{}).
		Distinct("reporter_id").
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
