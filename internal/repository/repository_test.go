package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva/cityroute/internal/model"
	"github.com/shiva/cityroute/pkg/db"
)

func TestEmbeddedCatalog(t *testing.T) {
	cities, err := NewEmbeddedCatalog().LoadCities(context.Background())
	require.NoError(t, err)

	require.Len(t, cities, 26)
	assert.Equal(t, "Kyiv", cities[0].Name)
	assert.Equal(t, 50.4501, cities[0].Location.Lat)
	assert.Equal(t, 30.5234, cities[0].Location.Lng)

	seen := make(map[string]bool)
	for _, c := range cities {
		assert.False(t, seen[c.Name], "duplicate %s", c.Name)
		seen[c.Name] = true
		assert.True(t, c.Location.Valid(), "%s has invalid coordinates", c.Name)
	}
}

func TestJSONCatalog_Malformed(t *testing.T) {
	_, err := NewJSONCatalog([]byte(`{"name": "not a list"}`)).LoadCities(context.Background())
	assert.Error(t, err)
}

func setupSQLite(t *testing.T) *SQLiteCityRepository {
	t.Helper()
	conn, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewSQLiteCityRepository(conn)
}

func TestSQLiteCityRepository_SeedAndLoad(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	empty, err := repo.LoadCities(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	seed := []model.City{
		{Name: "Lviv", Location: model.Location{Lat: 49.8397, Lng: 24.0297}},
		{Name: "Kyiv", Location: model.Location{Lat: 50.4501, Lng: 30.5234}},
		{Name: "Odesa", Location: model.Location{Lat: 46.4825, Lng: 30.7233}},
	}
	seeded, err := repo.SeedIfEmpty(ctx, seed)
	require.NoError(t, err)
	assert.True(t, seeded)

	got, err := repo.LoadCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, got, "catalog order must survive the round trip")
}

func TestSQLiteCityRepository_SeedIsIdempotent(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	first := []model.City{{Name: "Kyiv", Location: model.Location{Lat: 50.45, Lng: 30.52}}}
	_, err := repo.SeedIfEmpty(ctx, first)
	require.NoError(t, err)

	seeded, err := repo.SeedIfEmpty(ctx, []model.City{{Name: "Lviv", Location: model.Location{Lat: 49.8, Lng: 24.0}}})
	require.NoError(t, err)
	assert.False(t, seeded)

	got, err := repo.LoadCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestSQLiteCityRepository_RejectsDuplicateNames(t *testing.T) {
	repo := setupSQLite(t)

	_, err := repo.SeedIfEmpty(context.Background(), []model.City{
		{Name: "Kyiv", Location: model.Location{Lat: 50.45, Lng: 30.52}},
		{Name: "Kyiv", Location: model.Location{Lat: 50.46, Lng: 30.53}},
	})
	assert.Error(t, err)
}
