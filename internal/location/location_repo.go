package location

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=location_repo.go -destination=mock/location_repo_mock.go -package=mock
type Repository interface {
	FindByName(ctx context.Context, name string) (*Location, error)
	FindByNames(ctx context.Context, names []string) ([]Location, error)
	FindAll(ctx context.Context) ([]Location, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByName(ctx context.Context, name string) (*Location, error) {
	var l Location
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&l).Error
	return &l, err
}

func (r *repository) FindByNames(ctx context.Context, names []string) ([]Location, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []Location
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]Location, error) {
	var rows []Location
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}
