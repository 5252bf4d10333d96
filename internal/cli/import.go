package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfaias/propscope/internal/ingest"
	"github.com/mfaias/propscope/internal/listing"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <sale|rental> <file.csv>",
		Short: "Import listings from a CSV export",
		Long:  "Import listings of the given kind from a CSV file. The header must name a url column; title, price, location and details columns are used when present. Re-imported URLs update the existing row.",
		Args:  cobra.ExactArgs(2),
		RunE:  runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	records, err := ingest.ImportCSV(f)
	if err != nil {
		return err
	}

	return storeRecords(records, kind)
}

// storeRecords materializes raw records and upserts them, printing an
// ingest summary.
func storeRecords(records []ingest.RawRecord, kind listing.Kind) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	listings, stats := ingest.NewMaterializer(newNormalizer(cfg)).MaterializeAll(records, kind)

	stored := 0
	for i := range listings {
		if err := repo.Upsert(&listings[i]); err != nil {
			return fmt.Errorf("storing %s: %w", listings[i].URL, err)
		}
		stored++
	}

	if isJSON() {
		return printJSON(map[string]any{
			"stored":        stored,
			"skipped_nourl": stats.SkippedNoURL,
			"missing_price": stats.MissingPrice,
			"missing_size":  stats.MissingSize,
		})
	}

	fmt.Printf("Stored %d %s listings (%d skipped without url, %d missing price, %d missing size)\n",
		stored, kind, stats.SkippedNoURL, stats.MissingPrice, stats.MissingSize)
	return nil
}
