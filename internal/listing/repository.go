package listing

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mfaias/propscope/internal/db"
)

// Repository provides storage access for listings.
type Repository struct {
	db *db.DB
}

// NewRepository creates a listing repository.
func NewRepository(database *db.DB) *Repository {
	return &Repository{db: database}
}

const selectColumns = `id, url, kind, title, raw_location, neighborhood, size, room_type, price, first_seen, last_seen`

const upsertSQL = `INSERT INTO listings
	(url, kind, title, raw_location, neighborhood, size, room_type, price, first_seen, last_seen)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (url) DO UPDATE SET
		title        = excluded.title,
		raw_location = excluded.raw_location,
		neighborhood = excluded.neighborhood,
		size         = excluded.size,
		room_type    = excluded.room_type,
		price        = excluded.price,
		last_seen    = excluded.last_seen`

// Upsert inserts a listing or, when the URL already exists, refreshes
// its mutable fields and snapshot date. The first-seen timestamp is
// preserved so history is never lost.
func (r *Repository) Upsert(l *Listing) error {
	if l.URL == "" {
		return fmt.Errorf("listing URL is required")
	}
	if !ValidKind(string(l.Kind)) {
		return fmt.Errorf("invalid listing kind: %s", l.Kind)
	}

	now := time.Now().UTC()
	if l.FirstSeen.IsZero() {
		l.FirstSeen = now
	}
	if l.LastSeen.IsZero() {
		l.LastSeen = now
	}

	query := r.db.Rebind(upsertSQL)
	_, err := r.db.Exec(query,
		l.URL, string(l.Kind), l.Title, l.RawLocation,
		l.Neighborhood, l.Size, l.RoomType, l.Price,
		l.FirstSeen, l.LastSeen,
	)
	if err != nil {
		return fmt.Errorf("upserting listing %s: %w", l.URL, err)
	}
	return nil
}

// GetByURL returns the listing with the given URL.
func (r *Repository) GetByURL(url string) (*Listing, error) {
	query := r.db.Rebind(fmt.Sprintf("SELECT %s FROM listings WHERE url = ?", selectColumns))

	var l Listing
	err := r.db.Get(&l, query, url)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing %s not found", url)
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing %s: %w", url, err)
	}
	return &l, nil
}

// ListOptions controls filtering for ListByKind.
type ListOptions struct {
	Neighborhood string     // empty = all
	Since        *time.Time // only listings seen at or after this time
}

// ListByKind returns all listings of the given kind in stable URL
// order, optionally filtered by neighborhood and recency.
func (r *Repository) ListByKind(kind Kind, opts ListOptions) ([]Listing, error) {
	query := fmt.Sprintf("SELECT %s FROM listings", selectColumns)
	conditions := []string{"kind = ?"}
	args := []interface{}{string(kind)}

	if opts.Neighborhood != "" {
		conditions = append(conditions, "neighborhood = ?")
		args = append(args, opts.Neighborhood)
	}
	if opts.Since != nil {
		conditions = append(conditions, "last_seen >= ?")
		args = append(args, *opts.Since)
	}

	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY url"

	var listings []Listing
	if err := r.db.Select(&listings, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("listing %s listings: %w", kind, err)
	}
	return listings, nil
}

// CountByKind returns the number of stored listings of each kind.
func (r *Repository) CountByKind() (map[Kind]int, error) {
	rows, err := r.db.Query("SELECT kind, COUNT(*) FROM listings GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("counting listings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	counts := make(map[Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[Kind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}
	return counts, nil
}
