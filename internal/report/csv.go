package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV renders the report as CSV with a header row. Rows follow
// the result order, one per analyzed sale listing.
func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, res := range rep.Results {
		if err := cw.Write(rowValues(res)); err != nil {
			return fmt.Errorf("csv row %s: %w", res.Listing.URL, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
