package service

import (
	"errors"
	"fmt"
	"math"
)

// ─── Cost Configuration ─────────────────────────────────────

// CostConfig holds the parameters of the derived trip metrics.
type CostConfig struct {
	AverageSpeedKmh   float64 // Fixed cruising speed for travel time.
	MaxFuelEfficiency float64 // Upper bound accepted for km per liter.
	MaxFuelPrice      float64 // Upper bound accepted for price per liter.
	Currency          string  // Display label only.
}

// DefaultCostConfig returns the defaults for long-haul truck routes.
func DefaultCostConfig() CostConfig {
	return CostConfig{
		AverageSpeedKmh:   75,
		MaxFuelEfficiency: 100,
		MaxFuelPrice:      1000,
		Currency:          "UAH",
	}
}

// ─── Validation ─────────────────────────────────────────────

var (
	ErrInvalidFuelEfficiency = errors.New("fuel efficiency must be a positive number")
	ErrInvalidFuelPrice      = errors.New("fuel price per liter must be a positive number")
)

// ValidateFuelParams rejects non-finite, zero, negative and unrealistic
// fuel inputs. It runs before any path computation.
func ValidateFuelParams(efficiency, price float64, cfg CostConfig) error {
	if !positiveFinite(efficiency) {
		return ErrInvalidFuelEfficiency
	}
	if cfg.MaxFuelEfficiency > 0 && efficiency > cfg.MaxFuelEfficiency {
		return fmt.Errorf("%w: %.2f exceeds %.0f km/l", ErrInvalidFuelEfficiency, efficiency, cfg.MaxFuelEfficiency)
	}
	if !positiveFinite(price) {
		return ErrInvalidFuelPrice
	}
	if cfg.MaxFuelPrice > 0 && price > cfg.MaxFuelPrice {
		return fmt.Errorf("%w: %.2f exceeds %.0f per liter", ErrInvalidFuelPrice, price, cfg.MaxFuelPrice)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}

// ─── Formulas ───────────────────────────────────────────────

// FuelCost returns distance / efficiency * price.
// An infinite distance (unreachable leg) yields an infinite cost.
func FuelCost(distanceKm, efficiency, pricePerLiter float64) float64 {
	return distanceKm / efficiency * pricePerLiter
}

// TravelTimeHours returns distance / speed.
func TravelTimeHours(distanceKm, speedKmh float64) float64 {
	return distanceKm / speedKmh
}
