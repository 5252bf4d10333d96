package analysis

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mfaias/propscope/internal/config"
	"github.com/mfaias/propscope/internal/listing"
	"github.com/mfaias/propscope/internal/location"
)

// Result pairs one sale listing with its metrics. Metrics is nil when
// no comparable rental was found.
type Result struct {
	Listing listing.Listing   `json:"listing"`
	Metrics *Metrics          `json:"metrics,omitempty"`
	Reason  UnavailableReason `json:"unavailable_reason,omitempty"`
}

// Summary tallies a batch run: how many listings produced usable
// metrics and why the rest did not. A bad subset never fails the run.
type Summary struct {
	SalesAnalyzed    int `json:"sales_analyzed"`
	RentalPool       int `json:"rental_pool"`
	OutliersExcluded int `json:"outliers_excluded"`
	Usable           int `json:"usable"`
	NoComparables    int `json:"no_comparables"`
	MissingPrice     int `json:"missing_price"`
	// MissingSize counts targets without a size. Informational: a
	// sizeless target can still get a rent estimate, it just skips the
	// size filter and price/m² metrics.
	MissingSize int `json:"missing_size"`
}

// Runner executes a full analysis batch: match, estimate and classify
// every sale listing against the rental pool.
type Runner struct {
	cfg       config.Config
	norm      *location.Normalizer
	matcher   *Matcher
	estimator *Estimator
}

// NewRunner validates the configuration and builds a batch runner.
// Configuration errors are fatal: a batch must not run with undefined
// economic assumptions.
func NewRunner(cfg config.Config, norm *location.Normalizer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analysis config: %w", err)
	}
	return &Runner{
		cfg:       cfg,
		norm:      norm,
		matcher:   NewMatcher(cfg.Matcher, norm),
		estimator: NewEstimator(cfg),
	}, nil
}

// Run analyzes every sale listing against the rental pool and returns
// results in stable URL order. The pool is read-only; results are
// independent across targets.
func (r *Runner) Run(sales, rentals []listing.Listing) ([]Result, Summary) {
	pool, outliers := r.filterPool(rentals)

	summary := Summary{
		SalesAnalyzed:    len(sales),
		RentalPool:       len(pool),
		OutliersExcluded: outliers,
	}

	results := make([]Result, 0, len(sales))
	for _, sale := range sales {
		if sale.Size == nil {
			summary.MissingSize++
		}
		comps := r.matcher.FindComparables(sale, pool)
		metrics, reason := r.estimator.Estimate(sale, comps)

		switch reason {
		case ReasonNone:
			summary.Usable++
		case ReasonNoComparables:
			summary.NoComparables++
		case ReasonMissingPrice:
			summary.MissingPrice++
		}

		results = append(results, Result{Listing: sale, Metrics: metrics, Reason: reason})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Listing.URL < results[j].Listing.URL
	})

	r.classify(results)

	slog.Info("analysis run complete",
		"sales", summary.SalesAnalyzed,
		"rental_pool", summary.RentalPool,
		"usable", summary.Usable,
		"no_comparables", summary.NoComparables,
		"missing_price", summary.MissingPrice,
	)

	return results, summary
}

// filterPool drops rentals without a usable rent and rent-per-m²
// outliers above the configured ceiling.
func (r *Runner) filterPool(rentals []listing.Listing) ([]listing.Listing, int) {
	var pool []listing.Listing
	outliers := 0
	for _, l := range rentals {
		if l.Kind != listing.KindRental || !l.HasPrice() {
			continue
		}
		if pps := l.PricePerSqm(); pps != nil && *pps > r.cfg.Matcher.MaxRentPerSqm {
			outliers++
			continue
		}
		pool = append(pool, l)
	}
	return pool, outliers
}

// classify assigns the price/m² tier for each result against the mean
// of sale listings sharing its neighborhood. Listings without price,
// size or at least one peer stay unclassified.
func (r *Runner) classify(results []Result) {
	type group struct {
		sum   float64
		count int
	}
	groups := make(map[string]*group)

	key := func(l listing.Listing) string {
		return r.matcher.locationKey(l)
	}

	for i := range results {
		l := results[i].Listing
		pps := l.PricePerSqm()
		if pps == nil {
			continue
		}
		k := key(l)
		if k == "" {
			continue
		}
		g := groups[k]
		if g == nil {
			g = &group{}
			groups[k] = g
		}
		g.sum += *pps
		g.count++
	}

	band := r.cfg.Matcher.TierBand
	for i := range results {
		if results[i].Metrics == nil {
			continue
		}
		pps := results[i].Listing.PricePerSqm()
		if pps == nil {
			continue
		}
		g := groups[key(results[i].Listing)]
		if g == nil || g.count < 2 {
			continue
		}
		mean := g.sum / float64(g.count)
		switch {
		case *pps < mean*(1-band):
			results[i].Metrics.Tier = TierBelowAverage
		case *pps > mean*(1+band):
			results[i].Metrics.Tier = TierAboveAverage
		default:
			results[i].Metrics.Tier = TierAverage
		}
	}
}
