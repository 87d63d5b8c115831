package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shiva/cityroute/internal/model"
	"github.com/shiva/cityroute/internal/service"
)

// RouteRequest is the JSON body for POST /api/v1/routes.
type RouteRequest struct {
	Start          string   `json:"start"`
	Intermediate   string   `json:"intermediate,omitempty"`
	End            string   `json:"end"`
	FuelEfficiency *float64 `json:"fuel_efficiency"`
	FuelPrice      *float64 `json:"fuel_price"`
}

// RouteHandler handles journey planning requests.
type RouteHandler struct {
	journeys *service.JourneyService
}

// NewRouteHandler creates a new route handler.
func NewRouteHandler(journeys *service.JourneyService) *RouteHandler {
	return &RouteHandler{journeys: journeys}
}

// PlanRoute handles POST /api/v1/routes
//
// Request body:
//
//	{
//	  "start": "Lviv", "intermediate": "Vinnytsia", "end": "Kharkiv",
//	  "fuel_efficiency": 8.5, "fuel_price": 52.4
//	}
//
// Response: JourneyView. An unreachable destination is still 200, with
// "reachable": false and null distances.
func (h *RouteHandler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	var body RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be JSON with numeric fuel fields.")
		return
	}

	if body.Start == "" || body.End == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "start and end are required")
		return
	}
	if body.FuelEfficiency == nil || body.FuelPrice == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "fuel_efficiency and fuel_price are required")
		return
	}

	journey, err := h.journeys.PlanJourney(r.Context(), model.JourneyRequest{
		Start:          body.Start,
		Intermediate:   body.Intermediate,
		End:            body.End,
		FuelEfficiency: *body.FuelEfficiency,
		FuelPrice:      *body.FuelPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFuelEfficiency), errors.Is(err, service.ErrInvalidFuelPrice):
			writeError(w, http.StatusBadRequest, "invalid_fuel_params", err.Error())
		case errors.Is(err, service.ErrCityNotFound):
			writeError(w, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			log.Printf("[handler] route abandoned: %v", err)
			writeError(w, http.StatusServiceUnavailable, "cancelled", "Route computation was cancelled.")
		default:
			log.Printf("[handler] route error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.NewJourneyView(journey, h.journeys.Costs().Currency))
}
