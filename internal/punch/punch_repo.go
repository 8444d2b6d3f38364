package punch

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=punch_repo.go -destination=mock/punch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *PunchEvent) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date string) ([]PunchEvent, error)
	FindAllByEmployee(ctx context.Context, employeeID uuid.UUID) ([]PunchEvent, error)
	Update(ctx context.Context, e *PunchEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, e *PunchEvent) error {
	if r.tx != nil {
		// The write path pairs the event with its outbox row in one
		// *sql.Tx, so the insert must run on that connection.
		_, err := r.tx.ExecContext(ctx, `
INSERT INTO punch_events (
    id, employee_id, pin, kind, punch_date, punch_time, image_url,
    latitude, longitude, where_text, flagged, detected_location, source,
    device_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
`, e.ID, e.EmployeeID, e.Pin, e.Kind, e.Date, e.Time, e.ImageURL,
			e.Latitude, e.Longitude, e.Where, e.Flagged, e.DetectedLocation,
			e.Source, e.DeviceID)
		return err
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date string) ([]PunchEvent, error) {
	var rows []PunchEvent
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("punch_date = ?", date).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uuid.UUID) ([]PunchEvent, error) {
	var rows []PunchEvent
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("punch_date ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *PunchEvent) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&PunchEvent{}, "id = ?", id).Error
}
