// Package config holds analysis parameters: expense assumptions,
// financing, matcher thresholds and report options. Values come from
// an optional YAML file layered over documented defaults; a malformed
// file or out-of-range value is fatal so a run never proceeds with
// undefined economic assumptions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExpenseParams defines annual operating expenses. Percentages are
// decimals (0.08 = 8%).
type ExpenseParams struct {
	// ManagementPct of collected rent. Default 0.08.
	ManagementPct float64 `yaml:"management_pct"`
	// MaintenancePct of property value per year. Default 0.01.
	MaintenancePct float64 `yaml:"maintenance_pct"`
	// VacancyPct of gross rent lost to vacancy. Default 0.05.
	VacancyPct float64 `yaml:"vacancy_pct"`
	// InsurancePct of property value per year. Default 0.004.
	InsurancePct float64 `yaml:"insurance_pct"`
	// UtilitiesMonthly is a flat monthly cost in euros. Default 0.
	UtilitiesMonthly float64 `yaml:"utilities_monthly"`
}

// FinancingParams defines the optional mortgage scenario. When
// Enabled is false the estimator assumes an all-cash purchase and no
// debt service.
type FinancingParams struct {
	Enabled        bool    `yaml:"enabled"`
	DownPaymentPct float64 `yaml:"down_payment_pct"` // default 0.20
	InterestRate   float64 `yaml:"interest_rate"`    // annual, default 0.035
	TermYears      int     `yaml:"term_years"`       // default 30
	// One-time acquisition costs as fractions of the purchase price.
	ClosingPct    float64 `yaml:"closing_pct"`    // default 0.03
	RenovationPct float64 `yaml:"renovation_pct"` // default 0.05
	FurnishingPct float64 `yaml:"furnishing_pct"` // default 0.03
}

// MatcherParams tunes comparable-property matching.
type MatcherParams struct {
	// LocationThreshold is the minimum 0-100 fuzzy-similarity score
	// for a location match. Default 70.
	LocationThreshold int `yaml:"location_threshold"`
	// SizeTolerance is the band around the target size, as a fraction.
	// Default 0.25 (i.e. ±25%). Doubled once when no rental falls in
	// the tight band.
	SizeTolerance float64 `yaml:"size_tolerance"`
	// MinComparables is the comparable count below which the estimate
	// is graded low confidence. Default 3.
	MinComparables int `yaml:"min_comparables"`
	// WeightByScore averages comparable rents weighted by similarity
	// score instead of equally. Default false (equal weighting).
	WeightByScore bool `yaml:"weight_by_score"`
	// MaxRentPerSqm filters out rental outliers above this €/m².
	// Default 45.
	MaxRentPerSqm float64 `yaml:"max_rent_per_sqm"`
	// TierBand is the fraction around the neighborhood mean price/m²
	// classified as "average". Default 0.10.
	TierBand float64 `yaml:"tier_band"`
}

// Config is the full analysis configuration.
type Config struct {
	Expenses  ExpenseParams   `yaml:"expenses"`
	Financing FinancingParams `yaml:"financing"`
	Matcher   MatcherParams   `yaml:"matcher"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Expenses: ExpenseParams{
			ManagementPct:    0.08,
			MaintenancePct:   0.01,
			VacancyPct:       0.05,
			InsurancePct:     0.004,
			UtilitiesMonthly: 0,
		},
		Financing: FinancingParams{
			Enabled:        false,
			DownPaymentPct: 0.20,
			InterestRate:   0.035,
			TermYears:      30,
			ClosingPct:     0.03,
			RenovationPct:  0.05,
			FurnishingPct:  0.03,
		},
		Matcher: MatcherParams{
			LocationThreshold: 70,
			SizeTolerance:     0.25,
			MinComparables:    3,
			WeightByScore:     false,
			MaxRentPerSqm:     45,
			TierBand:          0.10,
		},
	}
}

// Load reads the config file at path layered over the defaults. A
// missing path returns the defaults; a malformed or invalid file is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every parameter is in range.
func (c Config) Validate() error {
	pcts := []struct {
		name  string
		value float64
	}{
		{"expenses.management_pct", c.Expenses.ManagementPct},
		{"expenses.maintenance_pct", c.Expenses.MaintenancePct},
		{"expenses.vacancy_pct", c.Expenses.VacancyPct},
		{"expenses.insurance_pct", c.Expenses.InsurancePct},
		{"financing.down_payment_pct", c.Financing.DownPaymentPct},
		{"financing.closing_pct", c.Financing.ClosingPct},
		{"financing.renovation_pct", c.Financing.RenovationPct},
		{"financing.furnishing_pct", c.Financing.FurnishingPct},
	}
	for _, p := range pcts {
		if p.value < 0 || p.value >= 1 {
			return fmt.Errorf("%s must be in [0, 1), got %g", p.name, p.value)
		}
	}

	if c.Expenses.UtilitiesMonthly < 0 {
		return fmt.Errorf("expenses.utilities_monthly must be >= 0, got %g", c.Expenses.UtilitiesMonthly)
	}
	if c.Financing.InterestRate < 0 || c.Financing.InterestRate >= 1 {
		return fmt.Errorf("financing.interest_rate must be in [0, 1), got %g", c.Financing.InterestRate)
	}
	if c.Financing.Enabled && c.Financing.TermYears <= 0 {
		return fmt.Errorf("financing.term_years must be positive, got %d", c.Financing.TermYears)
	}
	if c.Matcher.LocationThreshold < 0 || c.Matcher.LocationThreshold > 100 {
		return fmt.Errorf("matcher.location_threshold must be in [0, 100], got %d", c.Matcher.LocationThreshold)
	}
	if c.Matcher.SizeTolerance <= 0 || c.Matcher.SizeTolerance > 1 {
		return fmt.Errorf("matcher.size_tolerance must be in (0, 1], got %g", c.Matcher.SizeTolerance)
	}
	if c.Matcher.MinComparables < 1 {
		return fmt.Errorf("matcher.min_comparables must be >= 1, got %d", c.Matcher.MinComparables)
	}
	if c.Matcher.MaxRentPerSqm <= 0 {
		return fmt.Errorf("matcher.max_rent_per_sqm must be positive, got %g", c.Matcher.MaxRentPerSqm)
	}
	if c.Matcher.TierBand <= 0 || c.Matcher.TierBand > 1 {
		return fmt.Errorf("matcher.tier_band must be in (0, 1], got %g", c.Matcher.TierBand)
	}
	return nil
}
