package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shiva/cityroute/internal/model"
)

// SQLiteCityRepository reads the catalog from a SQLite `cities` table.
// The schema is applied by db.OpenSQLite.
type SQLiteCityRepository struct {
	db *sql.DB
}

// NewSQLiteCityRepository creates a repository over an open SQLite handle.
func NewSQLiteCityRepository(db *sql.DB) *SQLiteCityRepository {
	return &SQLiteCityRepository{db: db}
}

// LoadCities returns all cities ordered by position.
func (r *SQLiteCityRepository) LoadCities(ctx context.Context) ([]model.City, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, lat, lng FROM cities ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	defer rows.Close()

	cities := []model.City{}
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

// SeedIfEmpty inserts cities when the table has no rows yet.
// It reports whether rows were written.
func (r *SQLiteCityRepository) SeedIfEmpty(ctx context.Context, cities []model.City) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM cities`).Scan(&count); err != nil {
		return false, fmt.Errorf("count cities: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cities (position, name, lat, lng) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return false, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range cities {
		if _, err := stmt.ExecContext(ctx, i, c.Name, c.Location.Lat, c.Location.Lng); err != nil {
			return false, fmt.Errorf("insert city %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}
