// Package listing provides the listing domain model and data access.
package listing

import "time"

// Kind distinguishes for-sale from rental listings.
type Kind string

const (
	KindSale   Kind = "sale"
	KindRental Kind = "rental"
)

// ValidKind returns true if s is a known listing kind.
func ValidKind(s string) bool {
	switch Kind(s) {
	case KindSale, KindRental:
		return true
	}
	return false
}

// Listing is one scraped property record. The URL is the stable unique
// key across re-scrapes; size, room type, neighborhood and price are
// best-effort extractions and stay nil when absent.
type Listing struct {
	ID           int64     `db:"id" json:"id"`
	URL          string    `db:"url" json:"url"`
	Kind         Kind      `db:"kind" json:"kind"`
	Title        string    `db:"title" json:"title,omitempty"`
	RawLocation  string    `db:"raw_location" json:"raw_location,omitempty"`
	Neighborhood *string   `db:"neighborhood" json:"neighborhood,omitempty"`
	Size         *float64  `db:"size" json:"size,omitempty"`
	RoomType     *int      `db:"room_type" json:"room_type,omitempty"`
	Price        *float64  `db:"price" json:"price,omitempty"`
	FirstSeen    time.Time `db:"first_seen" json:"first_seen"`
	LastSeen     time.Time `db:"last_seen" json:"last_seen"`
}

// PricePerSqm returns price divided by size, or nil when either is
// missing or the size is zero.
func (l *Listing) PricePerSqm() *float64 {
	if l.Price == nil || l.Size == nil || *l.Size <= 0 {
		return nil
	}
	v := *l.Price / *l.Size
	return &v
}

// HasPrice reports whether the listing carries a usable price.
func (l *Listing) HasPrice() bool {
	return l.Price != nil && *l.Price > 0
}
