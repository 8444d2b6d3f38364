package employee

import (
	"time"

	"github.com/google/uuid"

	"timeclock/internal/location"
)

type Employee struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string    `gorm:"column:full_name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Pin       string    `gorm:"column:pin;type:varchar(4);uniqueIndex;not null"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Locations []location.Location `gorm:"many2many:employee_locations"`
}

func (Employee) TableName() string {
	return "employees"
}

// LocationNames lists the assigned location names, for admin row-level
// visibility checks.
func (e *Employee) LocationNames() []string {
	names := make([]string, 0, len(e.Locations))
	for _, l := range e.Locations {
		names = append(names, l.Name)
	}
	return names
}
