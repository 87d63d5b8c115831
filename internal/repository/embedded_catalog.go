// Package repository loads the city catalog from its configured source.
//
// Every source returns cities in catalog order. Validation happens once in
// service.NewCatalog, not here.
package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shiva/cityroute/internal/model"
)

//go:embed data/cities.json
var defaultCatalogJSON []byte

// EmbeddedCatalog serves the city list compiled into the binary.
type EmbeddedCatalog struct {
	raw []byte
}

// NewEmbeddedCatalog returns the built-in catalog of Ukrainian regional centers.
func NewEmbeddedCatalog() *EmbeddedCatalog {
	return &EmbeddedCatalog{raw: defaultCatalogJSON}
}

// NewJSONCatalog serves a catalog from raw JSON in the
// [{"name": ..., "lat": ..., "lng": ...}] format.
func NewJSONCatalog(raw []byte) *EmbeddedCatalog {
	return &EmbeddedCatalog{raw: raw}
}

// LoadCities decodes the catalog.
func (c *EmbeddedCatalog) LoadCities(_ context.Context) ([]model.City, error) {
	return decodeCatalog(c.raw)
}

func decodeCatalog(raw []byte) ([]model.City, error) {
	var records []model.CityRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	cities := make([]model.City, len(records))
	for i, r := range records {
		cities[i] = r.City()
	}
	return cities, nil
}
