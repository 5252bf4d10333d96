package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetResults = "Analysis"
	sheetSummary = "Summary"
)

// WriteExcel renders the report as an .xlsx workbook with a results
// sheet and a summary sheet.
func WriteExcel(path string, rep Report) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetResults); err != nil {
		return fmt.Errorf("excel: rename sheet: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("excel: header cell: %w", err)
		}
		if err := f.SetCellValue(sheetResults, cell, name); err != nil {
			return fmt.Errorf("excel: header %s: %w", name, err)
		}
	}

	for i, res := range rep.Results {
		for col, v := range rowValues(res) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("excel: cell: %w", err)
			}
			if err := f.SetCellValue(sheetResults, cell, v); err != nil {
				return fmt.Errorf("excel: row %s: %w", res.Listing.URL, err)
			}
		}
	}

	if err := writeSummarySheet(f, rep); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: save %s: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, rep Report) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("excel: summary sheet: %w", err)
	}

	rows := [][2]any{
		{"generated_at", rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"sales_analyzed", rep.Summary.SalesAnalyzed},
		{"rental_pool", rep.Summary.RentalPool},
		{"outliers_excluded", rep.Summary.OutliersExcluded},
		{"usable", rep.Summary.Usable},
		{"no_comparables", rep.Summary.NoComparables},
		{"missing_price", rep.Summary.MissingPrice},
	}
	for i, row := range rows {
		keyCell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("excel: summary cell: %w", err)
		}
		valCell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return fmt.Errorf("excel: summary cell: %w", err)
		}
		if err := f.SetCellValue(sheetSummary, keyCell, row[0]); err != nil {
			return fmt.Errorf("excel: summary key: %w", err)
		}
		if err := f.SetCellValue(sheetSummary, valCell, row[1]); err != nil {
			return fmt.Errorf("excel: summary value: %w", err)
		}
	}
	return nil
}
