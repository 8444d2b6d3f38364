package adminauth

import (
	"time"

	"github.com/google/uuid"

	"timeclock/internal/location"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// AdminUser is a back-office account. The `user` role is
// location-scoped: it only sees employees assigned to one of its
// home locations.
type AdminUser struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	Password  string    `gorm:"column:password;not null"` // bcrypt hash
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:user"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Locations []location.Location `gorm:"many2many:admin_user_locations"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

func (u *AdminUser) LocationNames() []string {
	names := make([]string, 0, len(u.Locations))
	for _, l := range u.Locations {
		names = append(names, l.Name)
	}
	return names
}
