// Package geofence decides whether a coordinate is admissible against a
// set of circular fences. It is pure: no storage, no clock, no HTTP.
package geofence

import "math"

type Mode string

const (
	// ModeHard blocks clock-in outside the fence.
	ModeHard Mode = "hard"
	// ModeSoft admits but warns.
	ModeSoft Mode = "soft"
)

const (
	DefaultRadiusMeters = 100.0
	earthRadiusMeters   = 6371000.0
)

type Candidate struct {
	Name    string
	Lat     float64
	Lng     float64
	RadiusM float64
	Mode    Mode
}

type Status string

const (
	// StatusSkipped means no usable fence data existed; absence of
	// geofence data never blocks a punch.
	StatusSkipped  Status = "skipped"
	StatusAdmitted Status = "admitted"
	StatusWarned   Status = "warned"
	StatusRejected Status = "rejected"
)

type Decision struct {
	Status           Status
	DetectedLocation string  // nearest satisfied fence, when admitted
	NearestLocation  string  // nearest fence by distance, for display
	NearestDistanceM float64 // distance to NearestLocation
}

func (d Decision) Admitted() bool {
	return d.Status != StatusRejected
}

// Evaluate runs the admission check. enforceHard should be true only
// for clock-in: once a shift has begun the system must not strand a
// worker outside their fence mid-shift.
func Evaluate(lat, lng float64, candidates []Candidate, enforceHard bool) Decision {
	if len(candidates) == 0 {
		return Decision{Status: StatusSkipped}
	}

	var (
		withinName  string
		withinDist  = math.MaxFloat64
		nearestName string
		nearestDist = math.MaxFloat64
		anyHard     bool
	)

	for _, c := range candidates {
		radius := c.RadiusM
		if radius <= 0 {
			radius = DefaultRadiusMeters
		}
		if c.Mode == ModeHard {
			anyHard = true
		}

		dist := Haversine(lat, lng, c.Lat, c.Lng)
		if dist < nearestDist {
			nearestDist = dist
			nearestName = c.Name
		}
		if dist <= radius && dist < withinDist {
			withinDist = dist
			withinName = c.Name
		}
	}

	if withinName != "" {
		return Decision{
			Status:           StatusAdmitted,
			DetectedLocation: withinName,
			NearestLocation:  nearestName,
			NearestDistanceM: nearestDist,
		}
	}

	if anyHard && enforceHard {
		return Decision{
			Status:           StatusRejected,
			NearestLocation:  nearestName,
			NearestDistanceM: nearestDist,
		}
	}

	return Decision{
		Status:           StatusWarned,
		NearestLocation:  nearestName,
		NearestDistanceM: nearestDist,
	}
}

// Haversine returns the great-circle distance between two coordinates
// in meters.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180

	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
