package report

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mfaias/propscope/internal/analysis"
	"github.com/mfaias/propscope/internal/listing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func sampleReport() Report {
	sale := listing.Listing{
		URL:          "https://portal.example/imovel/1",
		Kind:         listing.KindSale,
		Title:        "Apartamento T2 em Arroios",
		Neighborhood: strPtr("Arroios"),
		Size:         floatPtr(70),
		RoomType:     intPtr(2),
		Price:        floatPtr(250000),
	}
	metrics := &analysis.Metrics{
		EstimatedRent:   floatPtr(1050),
		GrossYield:      floatPtr(5.04),
		NOI:             floatPtr(7462),
		CapRate:         floatPtr(2.98),
		MonthlyCashFlow: floatPtr(621.83),
		CashOnCash:      floatPtr(2.69),
		PricePerSqm:     floatPtr(3571.43),
		Tier:            analysis.TierAverage,
		Confidence:      analysis.ConfidenceLow,
		ComparableCount: 2,
		AllCash:         true,
	}
	unmatched := listing.Listing{
		URL:   "https://portal.example/imovel/2",
		Kind:  listing.KindSale,
		Title: "Moradia isolada",
		Price: floatPtr(500000),
	}

	return Report{
		GeneratedAt: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
		Results: []analysis.Result{
			{Listing: sale, Metrics: metrics},
			{Listing: unmatched, Reason: analysis.ReasonNoComparables},
		},
		Summary: analysis.Summary{SalesAnalyzed: 2, RentalPool: 3, Usable: 1, NoComparables: 1},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReport()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reread csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "url" || rows[0][len(rows[0])-1] != "status" {
		t.Errorf("header = %v", rows[0])
	}

	byName := func(row []string, name string) string {
		for i, col := range columns {
			if col == name {
				return row[i]
			}
		}
		t.Fatalf("no column %q", name)
		return ""
	}

	if got := byName(rows[1], "estimated_rent"); got != "1050" {
		t.Errorf("estimated_rent = %q", got)
	}
	if got := byName(rows[1], "gross_yield_pct"); got != "5.04" {
		t.Errorf("gross_yield_pct = %q", got)
	}
	if got := byName(rows[1], "status"); got != "ok" {
		t.Errorf("status = %q", got)
	}

	// Unavailable metrics render as empty cells, not zeros.
	if got := byName(rows[2], "estimated_rent"); got != "" {
		t.Errorf("unavailable rent = %q, want empty", got)
	}
	if got := byName(rows[2], "status"); got != "no_comparables" {
		t.Errorf("status = %q", got)
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, sampleReport()); err != nil {
		t.Fatalf("write html: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Apartamento T2 em Arroios",
		"€1050",
		"5.04%",
		"2 listings analyzed",
		"no_comparables",
		"https://portal.example/imovel/1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html output missing %q", want)
		}
	}
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteExcel(path, sampleReport()); err != nil {
		t.Fatalf("write excel: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(sheetResults, "A1"); got != "url" {
		t.Errorf("A1 = %q, want url", got)
	}
	if got, _ := f.GetCellValue(sheetResults, "A2"); got != "https://portal.example/imovel/1" {
		t.Errorf("A2 = %q", got)
	}
	if got, _ := f.GetCellValue(sheetSummary, "A1"); got != "generated_at" {
		t.Errorf("summary A1 = %q", got)
	}
}
