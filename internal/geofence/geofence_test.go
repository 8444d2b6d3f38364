package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Office at Federation Square, Melbourne.
const (
	officeLat = -37.817979
	officeLng = 144.969058
)

func office(mode Mode) Candidate {
	return Candidate{Name: "HQ", Lat: officeLat, Lng: officeLng, RadiusM: 100, Mode: mode}
}

func TestHaversine(t *testing.T) {
	// Melbourne to Sydney is roughly 713 km.
	d := Haversine(-37.8136, 144.9631, -33.8688, 151.2093)
	assert.InDelta(t, 713000, d, 10000)

	assert.Zero(t, Haversine(officeLat, officeLng, officeLat, officeLng))
}

func TestEvaluate_InsideFenceAdmitted(t *testing.T) {
	// ~30m north of the office center.
	d := Evaluate(officeLat+0.00027, officeLng, []Candidate{office(ModeHard)}, true)

	assert.Equal(t, StatusAdmitted, d.Status)
	assert.Equal(t, "HQ", d.DetectedLocation)
	assert.True(t, d.Admitted())
}

func TestEvaluate_OutsideHardRejectedOnClockIn(t *testing.T) {
	// ~1.1km away.
	d := Evaluate(officeLat+0.01, officeLng, []Candidate{office(ModeHard)}, true)

	assert.Equal(t, StatusRejected, d.Status)
	assert.False(t, d.Admitted())
	assert.Equal(t, "HQ", d.NearestLocation)
	assert.Greater(t, d.NearestDistanceM, 100.0)
}

func TestEvaluate_OutsideHardWarnedForOtherKinds(t *testing.T) {
	// Same coordinate, but not a clock-in: warned, never rejected.
	d := Evaluate(officeLat+0.01, officeLng, []Candidate{office(ModeHard)}, false)

	assert.Equal(t, StatusWarned, d.Status)
	assert.True(t, d.Admitted())
}

func TestEvaluate_OutsideSoftWarned(t *testing.T) {
	d := Evaluate(officeLat+0.01, officeLng, []Candidate{office(ModeSoft)}, true)

	assert.Equal(t, StatusWarned, d.Status)
	assert.True(t, d.Admitted())
}

func TestEvaluate_NoCandidatesSkipped(t *testing.T) {
	d := Evaluate(officeLat, officeLng, nil, true)

	assert.Equal(t, StatusSkipped, d.Status)
	assert.True(t, d.Admitted())
}

func TestEvaluate_NearestSatisfiedWins(t *testing.T) {
	far := Candidate{Name: "Warehouse", Lat: officeLat + 0.0005, Lng: officeLng, RadiusM: 200, Mode: ModeSoft}
	near := office(ModeSoft)

	// Standing at the office: both fences satisfied, nearest name reported.
	d := Evaluate(officeLat, officeLng, []Candidate{far, near}, true)

	assert.Equal(t, StatusAdmitted, d.Status)
	assert.Equal(t, "HQ", d.DetectedLocation)
}

func TestEvaluate_DefaultRadiusApplied(t *testing.T) {
	c := Candidate{Name: "HQ", Lat: officeLat, Lng: officeLng, Mode: ModeHard} // RadiusM zero

	// ~50m away: inside the default 100m radius.
	d := Evaluate(officeLat+0.00045, officeLng, []Candidate{c}, true)
	assert.Equal(t, StatusAdmitted, d.Status)
}

func TestEvaluate_MixedModesAnyHardRejects(t *testing.T) {
	cands := []Candidate{office(ModeSoft), {Name: "Depot", Lat: officeLat + 0.2, Lng: officeLng, RadiusM: 100, Mode: ModeHard}}

	d := Evaluate(officeLat+0.05, officeLng, cands, true)
	assert.Equal(t, StatusRejected, d.Status)
}
