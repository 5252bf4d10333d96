// Package report renders analysis results as CSV, HTML or Excel
// documents.
package report

import (
	"fmt"
	"time"

	"github.com/mfaias/propscope/internal/analysis"
)

// Report bundles one analysis run for rendering.
type Report struct {
	GeneratedAt time.Time
	Results     []analysis.Result
	Summary     analysis.Summary
}

// New wraps an analysis run in a report stamped with the current time.
func New(results []analysis.Result, summary analysis.Summary) Report {
	return Report{
		GeneratedAt: time.Now().UTC(),
		Results:     results,
		Summary:     summary,
	}
}

// columns is the shared tabular projection used by the CSV and Excel
// writers.
var columns = []string{
	"url", "title", "neighborhood", "size_sqm", "room_type", "price",
	"price_per_sqm", "estimated_rent", "gross_yield_pct", "cap_rate_pct",
	"noi", "monthly_cash_flow", "cash_on_cash_pct", "tier", "confidence",
	"comparables", "status",
}

// rowValues projects one result onto the column layout. Unavailable
// metrics render as empty cells.
func rowValues(res analysis.Result) []string {
	l := res.Listing
	m := res.Metrics

	status := "ok"
	if res.Reason != analysis.ReasonNone {
		status = string(res.Reason)
	}

	row := []string{
		l.URL,
		l.Title,
		derefStr(l.Neighborhood),
		fmtFloat(l.Size, 0),
		fmtInt(l.RoomType),
		fmtFloat(l.Price, 0),
	}

	if m == nil {
		row = append(row, "", "", "", "", "", "", "", "", "", "")
	} else {
		row = append(row,
			fmtFloat(m.PricePerSqm, 0),
			fmtFloat(m.EstimatedRent, 0),
			fmtFloat(m.GrossYield, 2),
			fmtFloat(m.CapRate, 2),
			fmtFloat(m.NOI, 0),
			fmtFloat(m.MonthlyCashFlow, 0),
			fmtFloat(m.CashOnCash, 2),
			string(m.Tier),
			string(m.Confidence),
			fmt.Sprintf("%d", m.ComparableCount),
		)
	}

	return append(row, status)
}

func fmtFloat(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

func fmtInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func derefStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
