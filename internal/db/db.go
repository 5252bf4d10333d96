// Package db provides database initialization and access. SQLite is
// the default engine; PostgreSQL is used when a DSN is supplied.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps sqlx.DB with the driver name so callers can stay
// dialect-agnostic.
type DB struct {
	*sqlx.DB
	driver string
}

// Driver returns the underlying driver name ("sqlite3" or "postgres").
func (d *DB) Driver() string {
	return d.driver
}

// DefaultPath returns the default SQLite path: ~/.propscope/listings.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".propscope", "listings.db"), nil
}

// Open opens a database. A DSN starting with "postgres://" (or
// containing "host=") selects PostgreSQL; anything else is treated as
// a SQLite file path. Migrations run on open.
func Open(dsn string) (*DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return OpenPostgres(dsn)
	}
	return OpenSQLite(dsn)
}

// OpenSQLite opens (or creates) a SQLite database at the given path,
// enables WAL mode and foreign keys, and runs migrations.
func OpenSQLite(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	sdb, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	d := &DB{DB: sdb, driver: "sqlite3"}

	if err := d.configureSQLite(); err != nil {
		return nil, closeOnErr(d, err)
	}
	if err := d.migrate(); err != nil {
		return nil, closeOnErr(d, fmt.Errorf("running migrations: %w", err))
	}

	return d, nil
}

// OpenPostgres connects to PostgreSQL, retrying the initial ping, and
// runs migrations.
func OpenPostgres(dsn string) (*DB, error) {
	pdb, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	d := &DB{DB: pdb, driver: "postgres"}

	for i := 0; i < 5; i++ {
		if err = d.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, closeOnErr(d, fmt.Errorf("pinging postgres: %w", err))
	}

	if err := d.migrate(); err != nil {
		return nil, closeOnErr(d, fmt.Errorf("running migrations: %w", err))
	}

	return d, nil
}

func (d *DB) configureSQLite() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := d.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}
	return nil
}

func closeOnErr(d *DB, err error) error {
	if closeErr := d.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}
