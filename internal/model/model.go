// Package model contains domain models for the city route planner.
// City rows map to the `cities` table created by pkg/db (PostgreSQL or SQLite).
package model

import "math"

// ─── Location ───────────────────────────────────────────────

// Location represents a WGS-84 geographic point in degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both coordinates are finite and inside the
// latitude/longitude ranges.
func (l Location) Valid() bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) || math.IsInf(l.Lat, 0) || math.IsInf(l.Lng, 0) {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// ─── Catalog ────────────────────────────────────────────────

// City is an immutable catalog entry. Name is the unique key.
type City struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

// CityRecord is the flat {name, lat, lng} shape used by catalog files,
// database rows and the HTTP API.
type CityRecord struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// City converts the record into a City.
func (r CityRecord) City() City {
	return City{Name: r.Name, Location: Location{Lat: r.Lat, Lng: r.Lng}}
}

// Record flattens the city for serialization.
func (c City) Record() CityRecord {
	return CityRecord{Name: c.Name, Lat: c.Location.Lat, Lng: c.Location.Lng}
}

// Neighbor is a city paired with its great-circle distance from a reference city.
type Neighbor struct {
	City       City    `json:"city"`
	DistanceKm float64 `json:"distance_km"`
}

// Connection lists the nearest neighbors of one city in the static overview.
type Connection struct {
	City      City       `json:"city"`
	Neighbors []Neighbor `json:"neighbors"`
}

// ─── Search output ──────────────────────────────────────────

// PathSnapshot is the best-known path to the destination at one relaxation
// step. Path may be empty while the destination has not been reached yet.
type PathSnapshot struct {
	Step       int        `json:"step"`
	Settled    string     `json:"settled"`
	Relaxed    string     `json:"relaxed"`
	Path       []Location `json:"path"`
	DistanceKm float64    `json:"-"`
}

// Leg is the outcome of one start→destination search.
//
// An unreachable destination is a normal result: Reachable is false,
// DistanceKm is +Inf and Path is empty.
type Leg struct {
	From       City       `json:"from"`
	To         City       `json:"to"`
	Path       []Location `json:"path"`
	Cities     []string   `json:"cities"`
	DistanceKm float64    `json:"-"`
	Reachable  bool       `json:"reachable"`
	Steps      int        `json:"steps"`

	FuelCost        float64 `json:"-"`
	TravelTimeHours float64 `json:"-"`
}

// ─── Journey ────────────────────────────────────────────────

// JourneyRequest selects 2 or 3 cities by name plus the fuel parameters
// used for the derived cost. Intermediate is optional.
type JourneyRequest struct {
	Start          string
	Intermediate   string
	End            string
	FuelEfficiency float64 // km per liter
	FuelPrice      float64 // currency per liter
}

// Journey is the composed multi-leg result. Totals are +Inf when any leg
// is unreachable.
type Journey struct {
	ID                   string
	Cities               []City
	Legs                 []Leg
	TotalDistanceKm      float64
	TotalFuelCost        float64
	TotalTravelTimeHours float64
	Summary              string
}

// Reachable reports whether every leg found a path.
func (j *Journey) Reachable() bool {
	for _, leg := range j.Legs {
		if !leg.Reachable {
			return false
		}
	}
	return len(j.Legs) > 0
}
