package device

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"timeclock/internal/shared/apperror"
)

//go:generate mockgen -source=device_repo.go -destination=mock/device_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Device) error
	FindByID(ctx context.Context, id uuid.UUID) (*Device, error)
	FindAll(ctx context.Context) ([]Device, error)
	Update(ctx context.Context, d *Device) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, d *Device) error {
	err := r.db.WithContext(ctx).Create(d).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.New(apperror.CodeConflict, "Device already registered", 409)
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Device, error) {
	var d Device
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	return &d, err
}

func (r *repository) FindAll(ctx context.Context) ([]Device, error) {
	var rows []Device
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, d *Device) error {
	if r.tx != nil {
		// Inside an explicit transaction (revocation + outbox) the write
		// must go through the caller's *sql.Tx, not the pooled gorm conn.
		_, err := r.tx.ExecContext(ctx, `
UPDATE devices
SET status = $2, revoked_by = $3, revoked_at = $4, revoke_reason = $5, updated_at = NOW()
WHERE id = $1
`, d.ID, d.Status, d.RevokedBy, d.RevokedAt, d.RevokeReason)
		return err
	}
	return r.db.WithContext(ctx).Save(d).Error
}
