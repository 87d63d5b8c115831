package model

import "math"

// ─── JSON views ─────────────────────────────────────────────
//
// JSON has no infinity, so unreachable distances and their derived costs
// are rendered as null alongside "reachable": false.

// LegView is the wire form of a Leg.
type LegView struct {
	From            string     `json:"from"`
	To              string     `json:"to"`
	Cities          []string   `json:"cities"`
	Path            []Location `json:"path"`
	Reachable       bool       `json:"reachable"`
	Steps           int        `json:"steps"`
	DistanceKm      *float64   `json:"distance_km"`
	FuelCost        *float64   `json:"fuel_cost"`
	TravelTimeHours *float64   `json:"travel_time_hours"`
}

// JourneyView is the wire form of a Journey.
type JourneyView struct {
	ID                   string       `json:"id"`
	Cities               []CityRecord `json:"cities"`
	Legs                 []LegView    `json:"legs"`
	Reachable            bool         `json:"reachable"`
	TotalDistanceKm      *float64     `json:"total_distance_km"`
	TotalFuelCost        *float64     `json:"total_fuel_cost"`
	TotalTravelTimeHours *float64     `json:"total_travel_time_hours"`
	Currency             string       `json:"currency"`
	Summary              string       `json:"summary"`
}

// NewLegView converts a leg, rounding figures to 2 decimals.
func NewLegView(l *Leg) LegView {
	return LegView{
		From:            l.From.Name,
		To:              l.To.Name,
		Cities:          l.Cities,
		Path:            l.Path,
		Reachable:       l.Reachable,
		Steps:           l.Steps,
		DistanceKm:      Rounded(l.DistanceKm),
		FuelCost:        Rounded(l.FuelCost),
		TravelTimeHours: Rounded(l.TravelTimeHours),
	}
}

// NewJourneyView converts a journey.
func NewJourneyView(j *Journey, currency string) JourneyView {
	v := JourneyView{
		ID:                   j.ID,
		Cities:               make([]CityRecord, len(j.Cities)),
		Legs:                 make([]LegView, len(j.Legs)),
		Reachable:            j.Reachable(),
		TotalDistanceKm:      Rounded(j.TotalDistanceKm),
		TotalFuelCost:        Rounded(j.TotalFuelCost),
		TotalTravelTimeHours: Rounded(j.TotalTravelTimeHours),
		Currency:             currency,
		Summary:              j.Summary,
	}
	for i, c := range j.Cities {
		v.Cities[i] = c.Record()
	}
	for i := range j.Legs {
		v.Legs[i] = NewLegView(&j.Legs[i])
	}
	return v
}

// Rounded returns v rounded to 2 decimals, or nil when v is not finite.
func Rounded(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	r := math.Round(v*100) / 100
	return &r
}
