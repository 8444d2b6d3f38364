package adminauth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"timeclock/internal/shared/apperror"
)

//go:generate mockgen -source=adminauth_repo.go -destination=mock/adminauth_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *AdminUser) error
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *AdminUser) error {
	err := r.db.WithContext(ctx).Create(u).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.New(apperror.CodeConflict, "Email already registered", http.StatusConflict)
	}
	return err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*AdminUser, error) {
	var u AdminUser
	err := r.db.WithContext(ctx).
		Preload("Locations").
		Where("email = ? AND active = TRUE", email).
		First(&u).Error
	return &u, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	var u AdminUser
	err := r.db.WithContext(ctx).
		Preload("Locations").
		Where("id = ?", id).
		First(&u).Error
	return &u, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&AdminUser{}).Count(&n).Error
	return n, err
}
