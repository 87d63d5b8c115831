package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiva/cityroute/internal/model"
)

// CityRepository reads the catalog from the PostgreSQL `cities` table.
type CityRepository struct {
	pool *pgxpool.Pool
}

// NewCityRepository creates a new repository backed by the given PG pool.
func NewCityRepository(pool *pgxpool.Pool) *CityRepository {
	return &CityRepository{pool: pool}
}

// LoadCities returns all cities ordered by position.
func (r *CityRepository) LoadCities(ctx context.Context) ([]model.City, error) {
	rows, err := r.pool.Query(ctx, `SELECT name, lat, lng FROM cities ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	defer rows.Close()

	var cities []model.City
	for rows.Next() {
		var rec model.CityRecord
		if err := rows.Scan(&rec.Name, &rec.Lat, &rec.Lng); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, rec.City())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cities: %w", err)
	}
	return cities, nil
}

// SeedIfEmpty inserts cities when the table has no rows yet, in a single
// transaction. It reports whether rows were written.
func (r *CityRepository) SeedIfEmpty(ctx context.Context, cities []model.City) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM cities`).Scan(&count); err != nil {
		return false, fmt.Errorf("count cities: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	batch := &pgx.Batch{}
	for i, c := range cities {
		batch.Queue(`INSERT INTO cities (position, name, lat, lng) VALUES ($1, $2, $3, $4)`,
			i, c.Name, c.Location.Lat, c.Location.Lng)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return false, fmt.Errorf("insert cities: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}
