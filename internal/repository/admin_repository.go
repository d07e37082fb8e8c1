package repository

import (
	"context"

	"gorm.io/gorm"

	"civictrack/internal/model"
)

// AdminRepository defines admin account persistence operations.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id uint) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Create creates a new admin account.
func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// FindByID finds an admin by ID.
func (r *adminRepository) FindByID(ctx context.Context, id uint) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByEmail finds an admin by email.
func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
