package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shiva/cityroute/internal/model"
	"github.com/shiva/cityroute/internal/service"
	"github.com/shiva/cityroute/pkg/geo"
)

// CityHandler serves the catalog and the static connections overview.
type CityHandler struct {
	catalog *service.Catalog
	graph   *geo.ProximityGraph
}

// NewCityHandler creates a handler whose static overview links every city
// to its k nearest neighbors.
func NewCityHandler(catalog *service.Catalog, k int) *CityHandler {
	return &CityHandler{
		catalog: catalog,
		graph:   geo.NewProximityGraph(catalog.Cities(), k),
	}
}

// ListCities handles GET /api/v1/cities
//
// Returns the catalog in its fixed order, for populating city pickers.
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities := h.catalog.Cities()
	out := make([]model.CityRecord, len(cities))
	for i, c := range cities {
		out[i] = c.Record()
	}
	writeJSON(w, http.StatusOK, out)
}

// NeighborView is one entry of a static neighbor list.
type NeighborView struct {
	Name       string   `json:"name"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	DistanceKm *float64 `json:"distance_km"`
}

// ConnectionView is one city with its static neighbors.
type ConnectionView struct {
	model.CityRecord
	Neighbors []NeighborView `json:"neighbors"`
}

// Neighbors handles GET /api/v1/cities/{name}/neighbors
func (h *CityHandler) Neighbors(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	city, ok := h.catalog.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "City not found: "+name)
		return
	}
	writeJSON(w, http.StatusOK, ConnectionView{
		CityRecord: city.Record(),
		Neighbors:  neighborViews(h.graph.StaticNeighbors(city)),
	})
}

// Connections handles GET /api/v1/connections
//
// Returns every city with its k nearest neighbors over the whole catalog,
// for drawing the background connection layer. Independent of any search.
func (h *CityHandler) Connections(w http.ResponseWriter, r *http.Request) {
	conns := h.graph.Connections()
	out := make([]ConnectionView, len(conns))
	for i, c := range conns {
		out[i] = ConnectionView{CityRecord: c.City.Record(), Neighbors: neighborViews(c.Neighbors)}
	}
	writeJSON(w, http.StatusOK, out)
}

func neighborViews(ns []model.Neighbor) []NeighborView {
	out := make([]NeighborView, len(ns))
	for i, n := range ns {
		out[i] = NeighborView{
			Name:       n.City.Name,
			Lat:        n.City.Location.Lat,
			Lng:        n.City.Location.Lng,
			DistanceKm: model.Rounded(n.DistanceKm),
		}
	}
	return out
}
