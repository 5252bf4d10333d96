package analysis

import (
	"math"

	"github.com/mfaias/propscope/internal/config"
	"github.com/mfaias/propscope/internal/listing"
)

// Tier classifies a sale listing's price/m² against its neighborhood
// peers.
type Tier string

const (
	TierUnknown      Tier = ""
	TierBelowAverage Tier = "below_average"
	TierAverage      Tier = "average"
	TierAboveAverage Tier = "above_average"
)

// Confidence grades a rental estimate by how many comparables back it.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// UnavailableReason explains why the headline metrics for a sale
// listing could not be computed.
type UnavailableReason string

const (
	ReasonNone          UnavailableReason = ""
	ReasonNoComparables UnavailableReason = "no_comparables"
	ReasonMissingPrice  UnavailableReason = "missing_price"
)

// Metrics are the derived investment figures for one sale listing.
// Nil fields are Unavailable: a missing denominator never produces a
// zero or NaN value.
type Metrics struct {
	EstimatedRent   *float64   `json:"estimated_rent,omitempty"`
	GrossYield      *float64   `json:"gross_yield,omitempty"` // percent
	NOI             *float64   `json:"noi,omitempty"`         // annual
	CapRate         *float64   `json:"cap_rate,omitempty"`    // percent
	MonthlyCashFlow *float64   `json:"monthly_cash_flow,omitempty"`
	CashOnCash      *float64   `json:"cash_on_cash,omitempty"` // percent
	PricePerSqm     *float64   `json:"price_per_sqm,omitempty"`
	Tier            Tier       `json:"tier,omitempty"`
	Confidence      Confidence `json:"confidence,omitempty"`
	ComparableCount int        `json:"comparable_count"`
	BandExpanded    bool       `json:"band_expanded,omitempty"`
	// AllCash records the active cash-flow assumption: true means no
	// debt service was subtracted.
	AllCash bool `json:"all_cash"`
}

// Estimator derives investment metrics from a matched comparable set.
type Estimator struct {
	cfg config.Config
}

// NewEstimator creates an estimator with the given configuration.
func NewEstimator(cfg config.Config) *Estimator {
	return &Estimator{cfg: cfg}
}

// Estimate computes metrics for one sale listing from its comparable
// set. The returned reason is non-empty when the yield metrics are
// Unavailable (no comparables, or no usable sale price); in the
// missing-price case the rent estimate is still populated.
//
// Rent is the arithmetic mean of comparable rents; when
// matcher.weight_by_score is set the mean is weighted by similarity
// score instead.
func (e *Estimator) Estimate(target listing.Listing, comps ComparableSet) (*Metrics, UnavailableReason) {
	if comps.Empty() {
		return nil, ReasonNoComparables
	}

	rent := e.estimateRent(comps)
	m := &Metrics{
		EstimatedRent:   &rent,
		ComparableCount: comps.Len(),
		BandExpanded:    comps.BandExpanded,
		Confidence:      e.confidence(comps),
		AllCash:         !e.cfg.Financing.Enabled,
		PricePerSqm:     target.PricePerSqm(),
	}

	if !target.HasPrice() {
		return m, ReasonMissingPrice
	}
	price := *target.Price

	annualRent := rent * 12
	grossYield := annualRent / price * 100
	m.GrossYield = &grossYield

	noi := annualRent - e.operatingExpenses(price, rent)
	m.NOI = &noi

	capRate := noi / price * 100
	m.CapRate = &capRate

	e.cashFlow(m, price, noi)

	return m, ReasonNone
}

// estimateRent averages the comparable rents, equally by default or
// similarity-weighted when configured.
func (e *Estimator) estimateRent(comps ComparableSet) float64 {
	if e.cfg.Matcher.WeightByScore {
		var sum, weights float64
		for _, c := range comps.Comparables {
			w := c.Score
			if w <= 0 {
				w = 1e-9
			}
			sum += w * *c.Listing.Price
			weights += w
		}
		if weights > 0 {
			return sum / weights
		}
	}

	var sum float64
	for _, c := range comps.Comparables {
		sum += *c.Listing.Price
	}
	return sum / float64(comps.Len())
}

func (e *Estimator) confidence(comps ComparableSet) Confidence {
	switch {
	case comps.AdjacentTier || comps.Len() < e.cfg.Matcher.MinComparables:
		return ConfidenceLow
	case comps.Len() >= 5:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}

// operatingExpenses returns the estimated annual operating costs:
// management and vacancy as fractions of rent, maintenance and
// insurance as fractions of value, plus flat utilities.
func (e *Estimator) operatingExpenses(price, monthlyRent float64) float64 {
	p := e.cfg.Expenses
	annualRent := monthlyRent * 12

	management := annualRent * p.ManagementPct
	vacancy := annualRent * p.VacancyPct
	maintenance := price * p.MaintenancePct
	insurance := price * p.InsurancePct
	utilities := p.UtilitiesMonthly * 12

	return management + vacancy + maintenance + insurance + utilities
}

// cashFlow fills in the cash-flow metrics under the active financing
// assumption: all-cash (NOI with no debt service) by default, or an
// amortized mortgage when financing is enabled.
func (e *Estimator) cashFlow(m *Metrics, price, noi float64) {
	f := e.cfg.Financing
	oneTime := price * (f.ClosingPct + f.RenovationPct + f.FurnishingPct)

	if !f.Enabled {
		monthly := noi / 12
		m.MonthlyCashFlow = &monthly

		invested := price + oneTime
		if invested > 0 {
			coc := noi / invested * 100
			m.CashOnCash = &coc
		}
		return
	}

	loan := price * (1 - f.DownPaymentPct)
	mortgage := mortgagePayment(loan, f.InterestRate, f.TermYears)
	monthly := noi/12 - mortgage
	m.MonthlyCashFlow = &monthly

	invested := price*f.DownPaymentPct + oneTime
	if invested > 0 {
		coc := (noi - mortgage*12) / invested * 100
		m.CashOnCash = &coc
	}
}

// mortgagePayment computes the monthly payment for a fixed-rate loan.
func mortgagePayment(loan, annualRate float64, termYears int) float64 {
	n := float64(termYears * 12)
	if n <= 0 {
		return 0
	}
	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return loan / n
	}
	factor := math.Pow(1+monthlyRate, n)
	return loan * monthlyRate * factor / (factor - 1)
}
