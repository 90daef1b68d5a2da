package database

import (
	"database/sql"
	"fmt"
	"strings"

	"atcdel/internal/models"
)

type DepartureRepository interface {
	InsertBatch(departures []models.Departure) (int, error)
	Exists(key models.DepartureKey) (bool, error)
	Search(origin, waypoint string, limit int) ([]models.Departure, error)
	Count(term string) (int, error)
}

type departureRepository struct {
	db *sql.DB
}

func NewDepartureRepository(db *sql.DB) DepartureRepository {
	return &departureRepository{db: db}
}

// InsertBatch inserts departures in a single transaction and returns how
// many were new. Records whose natural key is already stored are ignored.
func (r *departureRepository) InsertBatch(departures []models.Departure) (int, error) {
	if len(departures) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO departures (
		ident, aircraft_type, origin_icao, origin_name, origin_city,
		destination_icao, destination_name, destination_city, operator_icao, route
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, d := range departures {
		key := d.Key()
		if key.Ident == "" {
			continue
		}
		var originName, originCity, destName, destCity string
		if d.Origin != nil {
			originName, originCity = d.Origin.Name, d.Origin.City
		}
		if d.Destination != nil {
			destName, destCity = d.Destination.Name, d.Destination.City
		}

		res, err := stmt.Exec(
			key.Ident, key.AircraftType, key.OriginICAO, originName, originCity,
			key.DestinationICAO, destName, destCity, key.OperatorICAO, key.Route,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert departure: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// Exists reports whether a departure with the given natural key is stored
func (r *departureRepository) Exists(key models.DepartureKey) (bool, error) {
	var ignored int
	err := r.db.QueryRow(`SELECT 1 FROM departures
		WHERE ident = ? AND aircraft_type = ? AND origin_icao = ?
		AND destination_icao = ? AND operator_icao = ? AND route = ?`,
		key.Ident, key.AircraftType, key.OriginICAO,
		key.DestinationICAO, key.OperatorICAO, key.Route,
	).Scan(&ignored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up departure: %w", err)
	}
	return true, nil
}

// Search returns up to limit cached departures from origin, in random
// order, whose route contains waypoint. An empty waypoint matches any route.
func (r *departureRepository) Search(origin, waypoint string, limit int) ([]models.Departure, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.Query(`SELECT ident, aircraft_type, origin_icao, origin_name, origin_city,
		destination_icao, destination_name, destination_city, operator_icao, route
		FROM departures
		WHERE origin_icao = ? AND instr(route, ?) > 0
		ORDER BY RANDOM()
		LIMIT ?`,
		strings.TrimSpace(origin), strings.TrimSpace(waypoint), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search departures: %w", err)
	}
	defer rows.Close()

	var departures []models.Departure
	for rows.Next() {
		d := models.Departure{Origin: &models.Airport{}, Destination: &models.Airport{}}
		if err := rows.Scan(
			&d.Ident, &d.AircraftType, &d.Origin.CodeICAO, &d.Origin.Name, &d.Origin.City,
			&d.Destination.CodeICAO, &d.Destination.Name, &d.Destination.City, &d.OperatorICAO, &d.Route,
		); err != nil {
			return nil, fmt.Errorf("failed to scan departure: %w", err)
		}
		departures = append(departures, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departures: %w", err)
	}

	return departures, nil
}

// Count returns the number of cached departures whose origin, destination
// or route contains term
func (r *departureRepository) Count(term string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM departures
		WHERE instr(origin_icao, ?1) > 0 OR instr(destination_icao, ?1) > 0 OR instr(route, ?1) > 0`,
		term,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count departures: %w", err)
	}
	return count, nil
}
