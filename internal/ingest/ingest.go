// Package ingest brings raw listing data into the system, either by
// fetching search-result pages through a scraping API or by importing
// CSV exports, and materializes the raw records into listings.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfaias/propscope/internal/extract"
	"github.com/mfaias/propscope/internal/listing"
	"github.com/mfaias/propscope/internal/location"
)

// RawRecord is one listing as captured from a source, before any
// parsing of its numeric or location fields.
type RawRecord struct {
	URL          string
	Title        string
	PriceText    string
	LocationText string
	DetailsText  string
}

// Stats tallies one materialization pass. Records with unusable
// fields are kept with those fields null; only records without a URL
// are dropped.
type Stats struct {
	Materialized int
	SkippedNoURL int
	MissingPrice int
	MissingSize  int
}

// Materializer converts raw records into listings using the shared
// field extractors and location normalizer.
type Materializer struct {
	norm *location.Normalizer
}

// NewMaterializer creates a materializer backed by the given
// normalizer.
func NewMaterializer(norm *location.Normalizer) *Materializer {
	return &Materializer{norm: norm}
}

// Materialize parses one raw record into a listing of the given kind.
// Unparseable numeric fields become null, never an error; a record
// without a URL cannot be keyed and is rejected.
func (m *Materializer) Materialize(raw RawRecord, kind listing.Kind) (listing.Listing, error) {
	u := strings.TrimSpace(raw.URL)
	if u == "" {
		return listing.Listing{}, fmt.Errorf("record has no url")
	}
	if !listing.ValidKind(string(kind)) {
		return listing.Listing{}, fmt.Errorf("invalid kind %q", kind)
	}

	details := raw.DetailsText
	if details == "" {
		details = raw.Title
	}

	roomType := extract.RoomType(details)
	now := time.Now().UTC()

	l := listing.Listing{
		URL:          u,
		Kind:         kind,
		Title:        strings.TrimSpace(raw.Title),
		RawLocation:  strings.TrimSpace(raw.LocationText),
		Neighborhood: extract.Neighborhood(raw.LocationText, m.norm),
		Size:         extract.Size(details, roomType),
		RoomType:     roomType,
		Price:        extract.Price(raw.PriceText),
		FirstSeen:    now,
		LastSeen:     now,
	}
	return l, nil
}

// MaterializeAll converts a batch of raw records, tallying skips and
// missing fields. A bad record never fails the batch.
func (m *Materializer) MaterializeAll(raws []RawRecord, kind listing.Kind) ([]listing.Listing, Stats) {
	var (
		out   []listing.Listing
		stats Stats
	)
	for _, raw := range raws {
		l, err := m.Materialize(raw, kind)
		if err != nil {
			stats.SkippedNoURL++
			continue
		}
		if l.Price == nil {
			stats.MissingPrice++
		}
		if l.Size == nil {
			stats.MissingSize++
		}
		stats.Materialized++
		out = append(out, l)
	}
	return out, stats
}
