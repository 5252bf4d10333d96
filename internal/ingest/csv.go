package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Column names recognized in CSV imports. The header row is matched
// case-insensitively; unknown columns are ignored.
var csvColumns = map[string]func(*RawRecord, string){
	"url":      func(r *RawRecord, v string) { r.URL = v },
	"title":    func(r *RawRecord, v string) { r.Title = v },
	"price":    func(r *RawRecord, v string) { r.PriceText = v },
	"location": func(r *RawRecord, v string) { r.LocationText = v },
	"details":  func(r *RawRecord, v string) { r.DetailsText = v },
}

// ImportCSV reads raw records from a CSV export. The first row must be
// a header naming at least a url column; rows with a different field
// count are rejected by the reader.
func ImportCSV(r io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	setters := make([]func(*RawRecord, string), len(header))
	hasURL := false
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		setters[i] = csvColumns[key]
		if key == "url" {
			hasURL = true
		}
	}
	if !hasURL {
		return nil, fmt.Errorf("csv header has no url column")
	}

	var records []RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		var rec RawRecord
		for i, v := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&rec, v)
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
