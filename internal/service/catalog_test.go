package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva/cityroute/internal/model"
)

func TestNewCatalog_PreservesOrder(t *testing.T) {
	c := newTestCatalog(t, ukraineCities())

	assert.Equal(t, 15, c.Len())
	cities := c.Cities()
	assert.Equal(t, "Kyiv", cities[0].Name)
	assert.Equal(t, "Uzhhorod", cities[14].Name)

	cities[0].Name = "mutated"
	assert.Equal(t, "Kyiv", c.Cities()[0].Name, "Cities must return a copy")
}

func TestNewCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		cities []model.City
		want   error
	}{
		{"empty", nil, ErrEmptyCatalog},
		{"unnamed", []model.City{city("", 1, 1)}, ErrUnnamedCity},
		{"duplicate", []model.City{city("A", 1, 1), city("A", 2, 2)}, ErrDuplicateCity},
		{"nan latitude", []model.City{city("A", math.NaN(), 1)}, ErrMalformedCoordinate},
		{"infinite longitude", []model.City{city("A", 1, math.Inf(1))}, ErrMalformedCoordinate},
		{"latitude out of range", []model.City{city("A", 91, 1)}, ErrMalformedCoordinate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.cities)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewCatalog_ErrorNamesCity(t *testing.T) {
	_, err := NewCatalog([]model.City{city("A", 1, 1), city("Broken", math.NaN(), 0)})

	var catErr *CatalogError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, "Broken", catErr.City)
	assert.Equal(t, 1, catErr.Index)
}

func TestCatalog_Resolve(t *testing.T) {
	c := newTestCatalog(t, ukraineCities())

	kyiv, err := c.Resolve("Kyiv")
	require.NoError(t, err)
	assert.Equal(t, 50.4501, kyiv.Location.Lat)

	_, err = c.Resolve("Atlantis")
	assert.ErrorIs(t, err, ErrCityNotFound)
}

type stubSource struct {
	cities []model.City
	err    error
}

func (s stubSource) LoadCities(context.Context) ([]model.City, error) { return s.cities, s.err }

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(context.Background(), stubSource{cities: ukraineCities()})
	require.NoError(t, err)
	assert.Equal(t, 15, c.Len())

	boom := errors.New("boom")
	_, err = LoadCatalog(context.Background(), stubSource{err: boom})
	assert.ErrorIs(t, err, boom)

	_, err = LoadCatalog(context.Background(), stubSource{cities: []model.City{}})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}
