// Package geo provides geographic utility functions for the city route planner.
//
// All distance calculations use the Haversine formula on WGS-84 coordinates
// with a spherical Earth of radius EarthRadiusKm. NaN coordinates propagate
// NaN distances; callers validate the catalog before searching.
package geo

import (
	"math"

	"github.com/shiva/cityroute/internal/model"
)

// ─── Constants ──────────────────────────────────────────────

const (
	// EarthRadiusKm is the mean radius of Earth in kilometers.
	EarthRadiusKm = 6371.0

	// DefaultNeighborCount is the k used for both the static overview and
	// the live search.
	DefaultNeighborCount = 3
)

// ─── Distance ───────────────────────────────────────────────

// HaversineKm returns the great-circle distance between two points in kilometers.
//
// The result is symmetric bit-for-bit: HaversineKm(a, b) == HaversineKm(b, a).
//
// Complexity: O(1)
func HaversineKm(a, b model.Location) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// CityDistanceKm is HaversineKm over the cities' locations.
func CityDistanceKm(a, b model.City) float64 {
	return HaversineKm(a.Location, b.Location)
}

// RouteDistanceKm returns the total distance of an ordered route in kilometers.
//
// Complexity: O(S) where S = number of points.
func RouteDistanceKm(route []model.Location) float64 {
	total := 0.0
	for i := 0; i < len(route)-1; i++ {
		total += HaversineKm(route[i], route[i+1])
	}
	return total
}

// ─── Helpers ────────────────────────────────────────────────

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
