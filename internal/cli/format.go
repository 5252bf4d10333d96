package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mfaias/propscope/internal/analysis"
	"github.com/mfaias/propscope/internal/listing"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printListingTable prints listings as a formatted table.
func printListingTable(listings []listing.Listing) error {
	if len(listings) == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NEIGHBORHOOD\tTYPE\tSIZE\tPRICE\t€/M²\tURL"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for i := range listings {
		l := &listings[i]
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			orDash(l.Neighborhood),
			formatRoomType(l.RoomType),
			formatFloat(l.Size, 0),
			formatMoney(l.Price),
			formatMoney(l.PricePerSqm()),
			truncate(l.URL, 60),
		); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d listings\n", len(listings))
	return nil
}

// printResultTable prints analysis results with a trailing summary.
func printResultTable(results []analysis.Result, summary analysis.Summary) error {
	if len(results) == 0 {
		fmt.Println("No sale listings to analyze.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NEIGHBORHOOD\tTYPE\tPRICE\tEST.RENT\tYIELD\tCAP\tCASHFLOW/MO\tCONF\tCOMPS\tURL"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for _, res := range results {
		l := res.Listing
		m := res.Metrics

		if m == nil {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t-\t-\t-\t-\t%s\t0\t%s\n",
				orDash(l.Neighborhood), formatRoomType(l.RoomType),
				formatMoney(l.Price), res.Reason, truncate(l.URL, 50)); err != nil {
				return fmt.Errorf("writing table row: %w", err)
			}
			continue
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			orDash(l.Neighborhood),
			formatRoomType(l.RoomType),
			formatMoney(l.Price),
			formatMoney(m.EstimatedRent),
			formatPct(m.GrossYield),
			formatPct(m.CapRate),
			formatMoney(m.MonthlyCashFlow),
			m.Confidence,
			m.ComparableCount,
			truncate(l.URL, 50),
		); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nAnalyzed %d listings: %d with metrics, %d without comparables, %d missing price (pool %d, %d outliers excluded)\n",
		summary.SalesAnalyzed, summary.Usable, summary.NoComparables,
		summary.MissingPrice, summary.RentalPool, summary.OutliersExcluded)
	return nil
}

func formatMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("€%.0f", *v)
}

func formatPct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", *v)
}

func formatFloat(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

func formatRoomType(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("T%d", *v)
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
