package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shiva/cityroute/internal/model"
)

// ─── Catalog Errors ─────────────────────────────────────────

var (
	ErrEmptyCatalog        = errors.New("city catalog is empty")
	ErrDuplicateCity       = errors.New("duplicate city name")
	ErrMalformedCoordinate = errors.New("malformed city coordinate")
	ErrUnnamedCity         = errors.New("city name is empty")
	ErrCityNotFound        = errors.New("city not found")
)

// CatalogError ties a catalog validation failure to the offending city.
type CatalogError struct {
	City  string
	Index int
	Err   error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog entry #%d %q: %v", e.Index, e.City, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// CatalogSource loads the ordered city list. Implementations live in
// internal/repository (embedded JSON, PostgreSQL, SQLite).
type CatalogSource interface {
	LoadCities(ctx context.Context) ([]model.City, error)
}

// ─── Catalog ────────────────────────────────────────────────

// Catalog is the fixed, validated, ordered city set. It is read-only after
// construction and safe to share between concurrent searches.
type Catalog struct {
	cities []model.City
	index  map[string]int
}

// NewCatalog validates cities and indexes them by name.
//
// Rejected: an empty list, empty names, duplicate names, and coordinates that
// are NaN, infinite or out of range. Bad coordinates would otherwise surface
// as NaN distances deep inside a search.
func NewCatalog(cities []model.City) (*Catalog, error) {
	if len(cities) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		cities: make([]model.City, len(cities)),
		index:  make(map[string]int, len(cities)),
	}
	copy(c.cities, cities)

	for i, city := range c.cities {
		switch {
		case city.Name == "":
			return nil, &CatalogError{City: city.Name, Index: i, Err: ErrUnnamedCity}
		case !city.Location.Valid():
			return nil, &CatalogError{City: city.Name, Index: i, Err: ErrMalformedCoordinate}
		}
		if _, dup := c.index[city.Name]; dup {
			return nil, &CatalogError{City: city.Name, Index: i, Err: ErrDuplicateCity}
		}
		c.index[city.Name] = i
	}

	return c, nil
}

// LoadCatalog reads cities from src and validates them.
func LoadCatalog(ctx context.Context, src CatalogSource) (*Catalog, error) {
	cities, err := src.LoadCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalog, err := NewCatalog(cities)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	log.Printf("[catalog] Loaded %d cities", catalog.Len())
	return catalog, nil
}

// Len returns the number of cities.
func (c *Catalog) Len() int { return len(c.cities) }

// Cities returns a copy of the ordered city list.
func (c *Catalog) Cities() []model.City {
	out := make([]model.City, len(c.cities))
	copy(out, c.cities)
	return out
}

// Lookup finds a city by name.
func (c *Catalog) Lookup(name string) (model.City, bool) {
	i, ok := c.index[name]
	if !ok {
		return model.City{}, false
	}
	return c.cities[i], true
}

// Resolve is Lookup returning ErrCityNotFound.
func (c *Catalog) Resolve(name string) (model.City, error) {
	city, ok := c.Lookup(name)
	if !ok {
		return model.City{}, fmt.Errorf("%w: %q", ErrCityNotFound, name)
	}
	return city, nil
}

func (c *Catalog) position(name string) int {
	i, ok := c.index[name]
	if !ok {
		return -1
	}
	return i
}
