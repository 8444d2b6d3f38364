package location

import (
	"time"

	"github.com/google/uuid"

	"timeclock/internal/geofence"
)

// Location is a named admission region. Coordinates are optional: a
// location without real coordinates never participates in geofence
// validation.
type Location struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Latitude  *float64  `gorm:"column:latitude"`
	Longitude *float64  `gorm:"column:longitude"`
	RadiusM   float64   `gorm:"column:radius_m;not null;default:100"`
	Mode      string    `gorm:"column:mode;type:varchar(10);not null;default:soft"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Location) TableName() string {
	return "locations"
}

// Candidates maps location rows onto geofence candidates, dropping
// rows without real coordinates.
func Candidates(rows []Location) []geofence.Candidate {
	out := make([]geofence.Candidate, 0, len(rows))
	for _, l := range rows {
		if l.Latitude == nil || l.Longitude == nil {
			continue
		}
		mode := geofence.Mode(l.Mode)
		if mode != geofence.ModeHard {
			mode = geofence.ModeSoft
		}
		out = append(out, geofence.Candidate{
			Name:    l.Name,
			Lat:     *l.Latitude,
			Lng:     *l.Longitude,
			RadiusM: l.RadiusM,
			Mode:    mode,
		})
	}
	return out
}
