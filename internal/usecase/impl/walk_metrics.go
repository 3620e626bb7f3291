// Package impl contains the concrete implementations of the usecase
// interfaces.
package impl

import (
	"math"

	"walkies/internal/domain/entity"
)

// earthRadiusM is the spherical earth radius used by the distance model.
const earthRadiusM = 6371000.0

// defaultWalkerWeightKg is assumed when no weight is configured.
const defaultWalkerWeightKg = 70.0

// haversineM returns the great-circle distance between two points in meters.
func haversineM(a, b entity.RoutePoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	return 2 * earthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// computeRouteDistance sums the haversine distances between consecutive route
// points. Routes with fewer than two points have zero length. Points are used
// as recorded; there is no smoothing or outlier rejection.
func computeRouteDistance(route []entity.RoutePoint) float64 {
	if len(route) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(route); i++ {
		total += haversineM(route[i-1], route[i])
	}

	return total
}

// computeCalories estimates energy burned from distance, duration and walker
// weight. The MET coefficient is picked from the average speed, then
// kcal = MET x weight x hours, truncated to a whole number. Zero duration
// yields zero.
func computeCalories(distanceM, durationS, weightKg float64) int {
	if durationS <= 0 {
		return 0
	}
	if weightKg <= 0 {
		weightKg = defaultWalkerWeightKg
	}

	hours := durationS / 3600
	speedKmh := (distanceM / 1000) / hours

	var met float64
	switch {
	case speedKmh < 3:
		met = 2.5
	case speedKmh < 5:
		met = 3.5
	case speedKmh < 6:
		met = 4.3
	default:
		met = 5.0
	}

	return int(met * weightKg * hours)
}

// computePoints converts a walk into reward points: one point per started
// 100 meters plus one point per started minute, both floored.
func computePoints(distanceM, durationS float64) int {
	return int(distanceM/100) + int(durationS/60)
}

// computeAveragePace returns the pace in minutes per kilometer. Callers must
// not invoke it with zero distance; the pace of an empty walk is undefined
// and left unset.
func computeAveragePace(distanceM, durationS float64) float64 {
	return (durationS / 60) / (distanceM / 1000)
}
