package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the local SQLite record cache
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

func optimizeSQLite(db *sql.DB) error {
	// WAL keeps readers unblocked while a batch is being written
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Departures returns the repository for cached departure records
func (d *DB) Departures() DepartureRepository {
	return NewDepartureRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	departuresSchema := `CREATE TABLE IF NOT EXISTS departures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ident TEXT NOT NULL,
		aircraft_type TEXT NOT NULL DEFAULT '',
		origin_icao TEXT NOT NULL DEFAULT '',
		origin_name TEXT NOT NULL DEFAULT '',
		origin_city TEXT NOT NULL DEFAULT '',
		destination_icao TEXT NOT NULL DEFAULT '',
		destination_name TEXT NOT NULL DEFAULT '',
		destination_city TEXT NOT NULL DEFAULT '',
		operator_icao TEXT NOT NULL DEFAULT '',
		route TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(ident, aircraft_type, origin_icao, destination_icao, operator_icao, route)
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_departures_origin ON departures(origin_icao)`,
		`CREATE INDEX IF NOT EXISTS idx_departures_destination ON departures(destination_icao)`,
	}

	if _, err := d.db.Exec(departuresSchema); err != nil {
		return fmt.Errorf("failed to create departures table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
