package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/kareemadel/printshop-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an employee repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Repository persists employee accounts.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) (*models.Employee, error)
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).First(&employee, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) Create(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}
