package impl

import (
	"math"
	"testing"

	"walkies/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestComputeRouteDistance_ShortSequences(t *testing.T) {
	assert.Zero(t, computeRouteDistance(nil))
	assert.Zero(t, computeRouteDistance([]entity.RoutePoint{}))
	assert.Zero(t, computeRouteDistance([]entity.RoutePoint{{Lat: 25.0330, Lng: 121.5654}}))
}

func TestComputeRouteDistance_SamePoint(t *testing.T) {
	p := entity.RoutePoint{Lat: 25.0330, Lng: 121.5654}

	distance := computeRouteDistance([]entity.RoutePoint{p, p})

	assert.InDelta(t, 0, distance, 1e-9)
}

func TestComputeRouteDistance_Symmetry(t *testing.T) {
	a := entity.RoutePoint{Lat: 25.0330, Lng: 121.5654}
	b := entity.RoutePoint{Lat: 25.0425, Lng: 121.5649}

	forward := computeRouteDistance([]entity.RoutePoint{a, b})
	backward := computeRouteDistance([]entity.RoutePoint{b, a})

	assert.InEpsilon(t, forward, backward, 1e-12)
	assert.Greater(t, forward, 0.0)
}

func TestComputeRouteDistance_KnownDistance(t *testing.T) {
	// One degree of latitude on the R=6371km sphere is about 111.19 km.
	a := entity.RoutePoint{Lat: 0, Lng: 0}
	b := entity.RoutePoint{Lat: 1, Lng: 0}

	distance := computeRouteDistance([]entity.RoutePoint{a, b})

	expected := 2 * math.Pi * earthRadiusM / 360
	assert.InDelta(t, expected, distance, 1)
}

func TestComputeRouteDistance_SumsConsecutivePairs(t *testing.T) {
	a := entity.RoutePoint{Lat: 0, Lng: 0}
	b := entity.RoutePoint{Lat: 0.001, Lng: 0}
	c := entity.RoutePoint{Lat: 0.002, Lng: 0}

	legAB := computeRouteDistance([]entity.RoutePoint{a, b})
	legBC := computeRouteDistance([]entity.RoutePoint{b, c})
	total := computeRouteDistance([]entity.RoutePoint{a, b, c})

	assert.InDelta(t, legAB+legBC, total, 1e-9)
}

func TestComputeCalories_ZeroDuration(t *testing.T) {
	assert.Zero(t, computeCalories(0, 0, defaultWalkerWeightKg))
	assert.Zero(t, computeCalories(5000, 0, defaultWalkerWeightKg))
}

func TestComputeCalories_MetTiers(t *testing.T) {
	tests := []struct {
		name      string
		distanceM float64
		durationS float64
		want      int
	}{
		// 2 km/h for one hour: MET 2.5 x 70 kg x 1 h = 175
		{name: "slow stroll", distanceM: 2000, durationS: 3600, want: 175},
		// 4 km/h for one hour: MET 3.5 -> 245
		{name: "easy walk", distanceM: 4000, durationS: 3600, want: 245},
		// 5.5 km/h for one hour: MET 4.3 -> 301
		{name: "brisk walk", distanceM: 5500, durationS: 3600, want: 301},
		// 8 km/h for one hour: MET 5.0 -> 350
		{name: "fast walk", distanceM: 8000, durationS: 3600, want: 350},
		// 4 km/h for 30 minutes: 3.5 x 70 x 0.5 = 122.5, truncated to 122
		{name: "truncates fraction", distanceM: 2000, durationS: 1800, want: 122},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeCalories(tt.distanceM, tt.durationS, defaultWalkerWeightKg))
		})
	}
}

func TestComputeCalories_DefaultsWeight(t *testing.T) {
	withDefault := computeCalories(4000, 3600, 0)
	explicit := computeCalories(4000, 3600, defaultWalkerWeightKg)

	assert.Equal(t, explicit, withDefault)
}

func TestComputePoints(t *testing.T) {
	tests := []struct {
		name      string
		distanceM float64
		durationS float64
		want      int
	}{
		{name: "zero walk", distanceM: 0, durationS: 0, want: 0},
		{name: "250m in 125s", distanceM: 250, durationS: 125, want: 4},
		{name: "distance only", distanceM: 1000, durationS: 0, want: 10},
		{name: "duration only", distanceM: 0, durationS: 600, want: 10},
		{name: "floors both terms", distanceM: 199, durationS: 119, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computePoints(tt.distanceM, tt.durationS))
		})
	}
}

func TestComputeAveragePace(t *testing.T) {
	// 5 km in 50 minutes is a 10 min/km pace.
	pace := computeAveragePace(5000, 3000)

	assert.InDelta(t, 10.0, pace, 1e-9)
}
