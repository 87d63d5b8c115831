package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shiva/cityroute/internal/middleware"
)

// NewRouter registers the API routes. health may be nil.
func NewRouter(cities *CityHandler, routes *RouteHandler, health http.HandlerFunc) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)

	if health != nil {
		router.HandleFunc("/health", health).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/cities", cities.ListCities).Methods(http.MethodGet)
	api.HandleFunc("/cities/{name}/neighbors", cities.Neighbors).Methods(http.MethodGet)
	api.HandleFunc("/connections", cities.Connections).Methods(http.MethodGet)
	api.HandleFunc("/routes", routes.PlanRoute).Methods(http.MethodPost)

	return router
}
