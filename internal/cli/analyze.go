package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfaias/propscope/internal/analysis"
	"github.com/mfaias/propscope/internal/listing"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		neighborhood string
		sinceDays    int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Estimate rents and investment metrics for stored sale listings",
		Long:  "Match every stored sale listing against the rental pool, estimate achievable rent from comparables, and compute gross yield, cap rate, NOI and cash flow.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, summary, err := runAnalysis(neighborhood, sinceDays)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(map[string]any{
					"summary": summary,
					"results": results,
				})
			}
			return printResultTable(results, summary)
		},
	}

	cmd.Flags().StringVar(&neighborhood, "neighborhood", "", "only analyze sale listings in this neighborhood")
	cmd.Flags().IntVar(&sinceDays, "since", 0, "only use listings seen in the last N days")

	return cmd
}

// runAnalysis loads listings, runs the batch and returns its results.
// Shared by the analyze and report commands.
func runAnalysis(neighborhood string, sinceDays int) ([]analysis.Result, analysis.Summary, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, analysis.Summary{}, err
	}

	runner, err := analysis.NewRunner(cfg, newNormalizer(cfg))
	if err != nil {
		return nil, analysis.Summary{}, err
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return nil, analysis.Summary{}, err
	}
	defer closeDB(database)

	saleOpts := listing.ListOptions{Neighborhood: neighborhood}
	poolOpts := listing.ListOptions{}
	if sinceDays > 0 {
		since := time.Now().UTC().AddDate(0, 0, -sinceDays)
		saleOpts.Since = &since
		poolOpts.Since = &since
	}

	sales, err := repo.ListByKind(listing.KindSale, saleOpts)
	if err != nil {
		return nil, analysis.Summary{}, fmt.Errorf("loading sale listings: %w", err)
	}
	rentals, err := repo.ListByKind(listing.KindRental, poolOpts)
	if err != nil {
		return nil, analysis.Summary{}, fmt.Errorf("loading rental listings: %w", err)
	}

	results, summary := runner.Run(sales, rentals)
	return results, summary, nil
}
