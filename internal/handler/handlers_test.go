package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva/cityroute/internal/model"
	"github.com/shiva/cityroute/internal/service"
)

func testCities() []model.City {
	return []model.City{
		{Name: "Kyiv", Location: model.Location{Lat: 50.4501, Lng: 30.5234}},
		{Name: "Lviv", Location: model.Location{Lat: 49.8397, Lng: 24.0297}},
		{Name: "Vinnytsia", Location: model.Location{Lat: 49.2331, Lng: 28.4682}},
		{Name: "Odesa", Location: model.Location{Lat: 46.4825, Lng: 30.7233}},
		{Name: "Ivano-Frankivsk", Location: model.Location{Lat: 48.9226, Lng: 24.7111}},
	}
}

func setupRouter(t *testing.T, k int) *mux.Router {
	t.Helper()
	catalog, err := service.NewCatalog(testCities())
	require.NoError(t, err)

	finder := service.NewPathFinder(catalog, service.WithNeighborCount(k))
	journeys := service.NewJourneyService(finder, nil, service.DefaultCostConfig())

	return NewRouter(NewCityHandler(catalog, k), NewRouteHandler(journeys), nil)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListCities(t *testing.T) {
	rec := do(t, setupRouter(t, 3), http.MethodGet, "/api/v1/cities", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.CityRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, model.CityRecord{Name: "Kyiv", Lat: 50.4501, Lng: 30.5234}, got[0])
}

func TestNeighbors(t *testing.T) {
	router := setupRouter(t, 3)

	rec := do(t, router, http.MethodGet, "/api/v1/cities/Lviv/neighbors", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got ConnectionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Lviv", got.Name)
	require.Len(t, got.Neighbors, 3)
	assert.Equal(t, "Ivano-Frankivsk", got.Neighbors[0].Name)

	rec = do(t, router, http.MethodGet, "/api/v1/cities/"+url.PathEscape("Atlantis")+"/neighbors", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConnections(t *testing.T) {
	rec := do(t, setupRouter(t, 2), http.MethodGet, "/api/v1/connections", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []ConnectionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 5)
	for _, c := range got {
		assert.Len(t, c.Neighbors, 2)
		for _, n := range c.Neighbors {
			assert.NotEqual(t, c.Name, n.Name)
		}
	}
}

func TestPlanRoute_Direct(t *testing.T) {
	rec := do(t, setupRouter(t, 3), http.MethodPost, "/api/v1/routes", map[string]any{
		"start": "Lviv", "end": "Odesa", "fuel_efficiency": 10, "fuel_price": 50,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got model.JourneyView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.True(t, got.Reachable)
	require.Len(t, got.Legs, 1)
	assert.Equal(t, "Lviv", got.Legs[0].Cities[0])
	assert.Equal(t, "Odesa", got.Legs[0].Cities[len(got.Legs[0].Cities)-1])
	require.NotNil(t, got.TotalDistanceKm)
	require.NotNil(t, got.TotalFuelCost)
	assert.InDelta(t, *got.TotalDistanceKm*5, *got.TotalFuelCost, 0.05)
	assert.Equal(t, "UAH", got.Currency)
	assert.Contains(t, got.Summary, "Lviv and Odesa")
}

func TestPlanRoute_WithIntermediate(t *testing.T) {
	rec := do(t, setupRouter(t, 3), http.MethodPost, "/api/v1/routes", map[string]any{
		"start": "Lviv", "intermediate": "Kyiv", "end": "Odesa", "fuel_efficiency": 10, "fuel_price": 50,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.JourneyView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Legs, 2)
	assert.Len(t, got.Cities, 3)
	assert.Equal(t, "Kyiv", got.Legs[0].To)
	assert.Equal(t, "Kyiv", got.Legs[1].From)
}

func TestPlanRoute_Unreachable(t *testing.T) {
	rec := do(t, setupRouter(t, 0), http.MethodPost, "/api/v1/routes", map[string]any{
		"start": "Lviv", "end": "Odesa", "fuel_efficiency": 10, "fuel_price": 50,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_distance_km":null`)

	var got model.JourneyView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Reachable)
	assert.Empty(t, got.Legs[0].Path)
	assert.Contains(t, got.Summary, "No path found")
}

func TestPlanRoute_BadRequests(t *testing.T) {
	router := setupRouter(t, 3)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"not json", "{", http.StatusBadRequest},
		{"non-numeric fuel", `{"start":"Lviv","end":"Kyiv","fuel_efficiency":"ten","fuel_price":50}`, http.StatusBadRequest},
		{"missing end", map[string]any{"start": "Lviv", "fuel_efficiency": 10, "fuel_price": 50}, http.StatusBadRequest},
		{"missing fuel", map[string]any{"start": "Lviv", "end": "Kyiv"}, http.StatusBadRequest},
		{"zero efficiency", map[string]any{"start": "Lviv", "end": "Kyiv", "fuel_efficiency": 0, "fuel_price": 50}, http.StatusBadRequest},
		{"unrealistic price", map[string]any{"start": "Lviv", "end": "Kyiv", "fuel_efficiency": 10, "fuel_price": 5000}, http.StatusBadRequest},
		{"unknown city", map[string]any{"start": "Lviv", "end": "Atlantis", "fuel_efficiency": 10, "fuel_price": 50}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/v1/routes", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
