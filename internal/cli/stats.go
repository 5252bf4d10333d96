package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfaias/propscope/internal/listing"
)

// neighborhoodStats aggregates the rental market for one neighborhood.
type neighborhoodStats struct {
	Neighborhood string   `json:"neighborhood"`
	Rentals      int      `json:"rentals"`
	AvgRent      float64  `json:"avg_rent"`
	AvgRentPerM2 *float64 `json:"avg_rent_per_sqm,omitempty"`
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database and rental market statistics",
		Long:  "Show listing counts by kind and per-neighborhood rental stats: count, average rent and average rent per m². Rent-per-m² outliers above the configured ceiling are excluded.",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	counts, err := repo.CountByKind()
	if err != nil {
		return err
	}

	rentals, err := repo.ListByKind(listing.KindRental, listing.ListOptions{})
	if err != nil {
		return err
	}
	stats := aggregateRentals(rentals, cfg.Matcher.MaxRentPerSqm)

	if isJSON() {
		return printJSON(map[string]any{
			"counts":        counts,
			"neighborhoods": stats,
		})
	}

	fmt.Printf("Sale listings:   %d\n", counts[listing.KindSale])
	fmt.Printf("Rental listings: %d\n", counts[listing.KindRental])
	fmt.Printf("Database:        %s\n\n", database.Driver())

	if len(stats) == 0 {
		fmt.Println("No priced rentals with a known neighborhood yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NEIGHBORHOOD\tRENTALS\tAVG RENT\tAVG €/M²"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, s := range stats {
		perM2 := "-"
		if s.AvgRentPerM2 != nil {
			perM2 = fmt.Sprintf("%.1f", *s.AvgRentPerM2)
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t€%.0f\t%s\n", s.Neighborhood, s.Rentals, s.AvgRent, perM2); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return w.Flush()
}

// aggregateRentals groups priced rentals by neighborhood, skipping
// rent-per-m² outliers above maxPerSqm.
func aggregateRentals(rentals []listing.Listing, maxPerSqm float64) []neighborhoodStats {
	type acc struct {
		count     int
		rentSum   float64
		perM2Sum  float64
		withSizes int
	}
	groups := make(map[string]*acc)

	for i := range rentals {
		l := &rentals[i]
		if !l.HasPrice() || l.Neighborhood == nil || *l.Neighborhood == "" {
			continue
		}
		pps := l.PricePerSqm()
		if pps != nil && maxPerSqm > 0 && *pps > maxPerSqm {
			continue
		}

		g := groups[*l.Neighborhood]
		if g == nil {
			g = &acc{}
			groups[*l.Neighborhood] = g
		}
		g.count++
		g.rentSum += *l.Price
		if pps != nil {
			g.perM2Sum += *pps
			g.withSizes++
		}
	}

	stats := make([]neighborhoodStats, 0, len(groups))
	for name, g := range groups {
		s := neighborhoodStats{
			Neighborhood: name,
			Rentals:      g.count,
			AvgRent:      g.rentSum / float64(g.count),
		}
		if g.withSizes > 0 {
			avg := g.perM2Sum / float64(g.withSizes)
			s.AvgRentPerM2 = &avg
		}
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Neighborhood < stats[j].Neighborhood
	})
	return stats
}
