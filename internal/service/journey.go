package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/shiva/cityroute/internal/model"
)

// Renderer consumes search output for display. Implementations must not
// block the search for long; see internal/render.
type Renderer interface {
	RenderStep(ctx context.Context, journeyID string, legIndex int, snap model.PathSnapshot)
	RenderLeg(ctx context.Context, journeyID string, legIndex int, leg *model.Leg)
	RenderJourney(ctx context.Context, journey *model.Journey)
}

type nopRenderer struct{}

func (nopRenderer) RenderStep(context.Context, string, int, model.PathSnapshot) {}
func (nopRenderer) RenderLeg(context.Context, string, int, *model.Leg)          {}
func (nopRenderer) RenderJourney(context.Context, *model.Journey)               {}

// ─── JourneyService ─────────────────────────────────────────

// JourneyService chains start → [intermediate →] end into one journey.
//
// Legs run sequentially: the second leg starts where the first one ended.
// Each leg gets its own search run. Totals are plain sums of the legs, so
// one unreachable leg turns every total into +Inf.
type JourneyService struct {
	finder   *PathFinder
	renderer Renderer
	costs    CostConfig
}

// NewJourneyService creates a journey service. A nil renderer discards output.
func NewJourneyService(finder *PathFinder, renderer Renderer, costs CostConfig) *JourneyService {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	return &JourneyService{finder: finder, renderer: renderer, costs: costs}
}

// Costs returns the cost configuration.
func (s *JourneyService) Costs() CostConfig { return s.costs }

// PlanJourney validates the request, runs one search per leg and sums the
// results.
//
// An intermediate equal to the start or end is allowed and produces a
// zero-length leg.
func (s *JourneyService) PlanJourney(ctx context.Context, req model.JourneyRequest) (*model.Journey, error) {
	// ── Step 1: Validate before any search ──────────────
	if err := ValidateFuelParams(req.FuelEfficiency, req.FuelPrice, s.costs); err != nil {
		return nil, err
	}

	stops, err := s.resolveStops(req)
	if err != nil {
		return nil, err
	}

	journey := &model.Journey{
		ID:     uuid.NewString(),
		Cities: stops,
		Legs:   make([]model.Leg, 0, len(stops)-1),
	}

	log.Printf("[journey] %s: planning %s", journey.ID, cityNames(stops))

	// ── Step 2: One search per leg ──────────────────────
	for i := 0; i+1 < len(stops); i++ {
		legIndex := i
		observer := func(snap model.PathSnapshot) {
			s.renderer.RenderStep(ctx, journey.ID, legIndex, snap)
		}

		leg, err := s.finder.FindPath(ctx, stops[i].Name, stops[i+1].Name, WithObserver(observer))
		if err != nil {
			return nil, fmt.Errorf("journey %s leg %d: %w", journey.ID, legIndex+1, err)
		}

		// ── Step 3: Derived metrics per leg ─────────────
		leg.FuelCost = FuelCost(leg.DistanceKm, req.FuelEfficiency, req.FuelPrice)
		leg.TravelTimeHours = TravelTimeHours(leg.DistanceKm, s.costs.AverageSpeedKmh)

		journey.TotalDistanceKm += leg.DistanceKm
		journey.TotalFuelCost += leg.FuelCost
		journey.TotalTravelTimeHours += leg.TravelTimeHours
		journey.Legs = append(journey.Legs, *leg)

		s.renderer.RenderLeg(ctx, journey.ID, legIndex, leg)
	}

	journey.Summary = s.summarize(journey)

	if journey.Reachable() {
		log.Printf("[journey] %s: %.2f km, %.2f %s, %.2f h",
			journey.ID, journey.TotalDistanceKm, journey.TotalFuelCost, s.costs.Currency, journey.TotalTravelTimeHours)
	} else {
		log.Printf("[journey] %s: no path found", journey.ID)
	}

	s.renderer.RenderJourney(ctx, journey)
	return journey, nil
}

func (s *JourneyService) resolveStops(req model.JourneyRequest) ([]model.City, error) {
	catalog := s.finder.Catalog()

	names := []string{req.Start}
	if req.Intermediate != "" {
		names = append(names, req.Intermediate)
	}
	names = append(names, req.End)

	stops := make([]model.City, 0, len(names))
	for _, name := range names {
		city, err := catalog.Resolve(name)
		if err != nil {
			return nil, err
		}
		stops = append(stops, city)
	}
	return stops, nil
}

// summarize builds the travel-time sentence naming every stop in order.
func (s *JourneyService) summarize(j *model.Journey) string {
	names := make([]string, len(j.Cities))
	for i, c := range j.Cities {
		names[i] = c.Name
	}
	between := joinNames(names)

	if math.IsInf(j.TotalDistanceKm, 1) {
		return fmt.Sprintf("No path found between %s.", between)
	}
	return fmt.Sprintf("The travel time between %s at an average speed of %.0f km/h is approximately %.2f hours.",
		between, s.costs.AverageSpeedKmh, j.TotalTravelTimeHours)
}

// joinNames renders "A and B" or "A, B and C".
func joinNames(names []string) string {
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func cityNames(cities []model.City) string {
	parts := make([]string, len(cities))
	for i, c := range cities {
		parts[i] = c.Name
	}
	return strings.Join(parts, " → ")
}
