package repository

import (
	"context"

	"gorm.io/gorm"

	"civictrack/internal/model"
)

// UserRepository maintains per-reporter aggregate counters.
type UserRepository interface {
	IncrementIssuesReported(ctx context.Context, userID string) error
	IncrementVotesCast(ctx context.Context, userID string) error
	FindByUserID(ctx context.Context, userID string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// IncrementIssuesReported bumps the reporter's issue counter, creating the
// row on first sight.
func (r *userRepository) IncrementIssuesReported(ctx context.Context, userID string) error {
	return r.increment(ctx, userID, "issues_reported")
}

// IncrementVotesCast bumps the voter's vote counter, creating the row on
// first sight.
func (r *userRepository) IncrementVotesCast(ctx context.Context, userID string) error {
	return r.increment(ctx, userID, "votes_cast")
}

// FindByUserID finds a user by their opaque identity string.
func (r *userRepository) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) increment(ctx context.Context, userID, column string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := model.User{UserID: userID}
		if err := tx.Where("user_id = ?", userID).FirstOrCreate(&user).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("user_id = ?", userID).
			UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	})
}
