package punch

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindIn       = "in"
	KindBreak    = "break"
	KindEndBreak = "endBreak"
	KindOut      = "out"
)

func ValidKind(kind string) bool {
	switch kind {
	case KindIn, KindBreak, KindEndBreak, KindOut:
		return true
	default:
		return false
	}
}

const (
	// SourceInsert marks a time manually backfilled by an admin with no
	// underlying device event; SourceUpdate marks a corrected real punch.
	SourceInsert = "insert"
	SourceUpdate = "update"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// PunchEvent is the append-only fact record. Rows are never deleted by
// normal operation; only the administrator edit path mutates them, and
// it stamps Source when it does.
type PunchEvent struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID       uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index:idx_punch_employee_date"`
	Pin              string     `gorm:"column:pin;type:varchar(4);not null"`
	Kind             string     `gorm:"column:kind;type:varchar(10);not null"`
	Date             string     `gorm:"column:punch_date;type:varchar(10);not null;index:idx_punch_employee_date"`
	Time             string     `gorm:"column:punch_time;not null"`
	ImageURL         string     `gorm:"column:image_url"`
	Latitude         *float64   `gorm:"column:latitude"`
	Longitude        *float64   `gorm:"column:longitude"`
	Where            string     `gorm:"column:where_text"`
	Flagged          bool       `gorm:"column:flagged;not null;default:false"`
	DetectedLocation string     `gorm:"column:detected_location"`
	Source           string     `gorm:"column:source;type:varchar(10)"`
	DeviceID         *uuid.UUID `gorm:"column:device_id;type:uuid"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (PunchEvent) TableName() string {
	return "punch_events"
}
