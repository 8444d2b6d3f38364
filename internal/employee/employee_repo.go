package employee

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByPin(ctx context.Context, pin string) (*Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("Locations").
		Where("id = ?", id).
		First(&e).Error
	return &e, err
}

func (r *repository) FindByPin(ctx context.Context, pin string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("Locations").
		Where("pin = ? AND active = TRUE", pin).
		First(&e).Error
	return &e, err
}
