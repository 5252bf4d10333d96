package db

import "fmt"

// Migrations are ordered per driver; each statement is idempotent.
var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		url          TEXT    NOT NULL UNIQUE,
		kind         TEXT    NOT NULL CHECK (kind IN ('sale', 'rental')),
		title        TEXT    NOT NULL DEFAULT '',
		raw_location TEXT    NOT NULL DEFAULT '',
		neighborhood TEXT,
		size         REAL,
		room_type    INTEGER,
		price        REAL,
		first_seen   DATETIME NOT NULL,
		last_seen    DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_kind ON listings(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_neighborhood ON listings(neighborhood)`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id           SERIAL PRIMARY KEY,
		url          TEXT   NOT NULL UNIQUE,
		kind         TEXT   NOT NULL CHECK (kind IN ('sale', 'rental')),
		title        TEXT   NOT NULL DEFAULT '',
		raw_location TEXT   NOT NULL DEFAULT '',
		neighborhood TEXT,
		size         DOUBLE PRECISION,
		room_type    INTEGER,
		price        DOUBLE PRECISION,
		first_seen   TIMESTAMPTZ NOT NULL,
		last_seen    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_kind ON listings(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_neighborhood ON listings(neighborhood)`,
}

// migrate runs the migration list for the active driver.
func (d *DB) migrate() error {
	migrations := sqliteMigrations
	if d.driver == "postgres" {
		migrations = postgresMigrations
	}
	for i, m := range migrations {
		if _, err := d.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
