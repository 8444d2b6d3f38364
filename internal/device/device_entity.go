package device

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
	StatusRevoked  = "revoked"
)

// Device is one physical kiosk. The row is the source of truth for the
// identity's lifecycle; the signed device token merely names it.
type Device struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name         string     `gorm:"column:name"`
	Location     string     `gorm:"column:location;not null;index"`
	RegisteredBy uuid.UUID  `gorm:"column:registered_by;type:uuid;not null"`
	Status       string     `gorm:"column:status;type:varchar(10);not null;default:active"`
	RevokedBy    *uuid.UUID `gorm:"column:revoked_by;type:uuid"`
	RevokedAt    *time.Time `gorm:"column:revoked_at"`
	RevokeReason *string    `gorm:"column:revoke_reason"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (Device) TableName() string {
	return "devices"
}

func (d *Device) IsActive() bool {
	return d.Status == StatusActive
}
