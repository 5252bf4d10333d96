// Package cli defines the cobra command tree for propscope.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mfaias/propscope/internal/config"
	"github.com/mfaias/propscope/internal/db"
	"github.com/mfaias/propscope/internal/listing"
	"github.com/mfaias/propscope/internal/location"
)

var (
	flagFormat string
	flagDB     string
	flagConfig string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "propscope",
		Short:         "Analyze real-estate listings for rental investment potential",
		Long:          "Collect sale and rental listings, estimate achievable rents from comparable properties, and compute investment metrics like gross yield, cap rate and cash flow.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "database DSN: a SQLite path or a postgres:// URL (default: $DATABASE_URL or ~/.propscope/listings.db)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "analysis config path (default: ~/.propscope/config.yaml)")

	root.AddCommand(
		newImportCmd(),
		newScrapeCmd(),
		newAnalyzeCmd(),
		newReportCmd(),
		newListCmd(),
		newStatsCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the listing database using the --db flag, DATABASE_URL,
// or the default SQLite path.
func openDB() (*db.DB, error) {
	dsn := flagDB
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		var err error
		dsn, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(dsn)
}

// newListingRepo opens the database and wraps it in a repository.
// The caller must close the returned DB.
func newListingRepo() (*listing.Repository, *db.DB, error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return listing.NewRepository(database), database, nil
}

// loadConfig loads the analysis configuration from the --config flag
// or the default path. A missing file yields defaults; a malformed or
// invalid one is a fatal error.
func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolving home dir: %w", err)
		}
		path = filepath.Join(home, ".propscope", "config.yaml")
	}
	return config.Load(path)
}

// newNormalizer builds the location normalizer from the configured
// fuzzy threshold.
func newNormalizer(cfg config.Config) *location.Normalizer {
	return location.New(cfg.Matcher.LocationThreshold)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *db.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}

// parseKind validates a sale|rental command argument.
func parseKind(arg string) (listing.Kind, error) {
	if !listing.ValidKind(arg) {
		return "", fmt.Errorf("invalid kind %q: must be sale or rental", arg)
	}
	return listing.Kind(arg), nil
}
