// Package analysis implements comparable-property matching, rental
// income estimation and investment metrics for sale listings. All
// functions are pure computations over in-memory listing pools; the
// caller supplies data and configuration explicitly.
package analysis

import (
	"sort"

	"github.com/mfaias/propscope/internal/config"
	"github.com/mfaias/propscope/internal/listing"
	"github.com/mfaias/propscope/internal/location"
)

// Score weights for the similarity combination. Dimensions missing on
// either side are excluded and the remaining weights renormalized.
const (
	weightLocation = 0.40
	weightSize     = 0.35
	weightRoomType = 0.25
)

// Comparable is one rental listing judged similar to a sale target,
// tagged with its similarity score.
type Comparable struct {
	Listing  listing.Listing
	Score    float64 // 0..1, higher is better
	Adjacent bool    // matched on an adjacent room-type code (±1)
}

// ComparableSet is the result of matching one sale listing against a
// rental pool, ordered best match first.
type ComparableSet struct {
	Comparables []Comparable
	// BandExpanded records that the tight size band was empty and the
	// match used the doubled tolerance.
	BandExpanded bool
	// AdjacentTier records that no identical room-type match existed
	// and adjacent codes were accepted.
	AdjacentTier bool
}

// Empty reports whether no comparables were found.
func (s ComparableSet) Empty() bool { return len(s.Comparables) == 0 }

// Len returns the number of comparables.
func (s ComparableSet) Len() int { return len(s.Comparables) }

// Matcher finds comparable rentals for sale listings.
type Matcher struct {
	params config.MatcherParams
	norm   *location.Normalizer
}

// NewMatcher creates a matcher with the given parameters.
func NewMatcher(params config.MatcherParams, norm *location.Normalizer) *Matcher {
	return &Matcher{params: params, norm: norm}
}

// FindComparables filters the rental pool by location, size proximity
// and room-type closeness, scores each candidate, and returns the
// matched set ordered by score (ties broken by freshest snapshot).
//
// Missing fields degrade gracefully: a target without size skips size
// filtering entirely, a target without room type skips the room-type
// tier, and an exhausted pool yields an empty set rather than an
// error.
func (m *Matcher) FindComparables(target listing.Listing, pool []listing.Listing) ComparableSet {
	targetLoc := m.locationKey(target)

	// Step 1: location filter.
	var byLocation []candidate
	for _, r := range pool {
		if r.Kind != listing.KindRental || !r.HasPrice() {
			continue
		}
		quality, ok := m.locationMatch(targetLoc, r)
		if !ok {
			continue
		}
		byLocation = append(byLocation, candidate{l: r, locQuality: quality})
	}

	var set ComparableSet

	// Step 2: size proximity, with one band expansion before giving up.
	bySize := byLocation
	if target.Size != nil && *target.Size > 0 {
		tight := filterBySize(byLocation, *target.Size, m.params.SizeTolerance)
		if len(tight) == 0 {
			wide := filterBySize(byLocation, *target.Size, m.params.SizeTolerance*2)
			if len(wide) > 0 {
				bySize = wide
				set.BandExpanded = true
			} else {
				bySize = nil
			}
		} else {
			bySize = tight
		}
	}

	// Step 3: room-type tiers. Identical codes win; adjacent codes
	// (±1) are a second tier; with no room-typed matches at all the
	// dimension is dropped.
	byRoom := bySize
	adjacentTier := false
	if target.RoomType != nil {
		var same, adjacent []candidate
		for _, c := range bySize {
			if c.l.RoomType == nil {
				continue
			}
			switch diff(*c.l.RoomType, *target.RoomType) {
			case 0:
				same = append(same, c)
			case 1:
				adjacent = append(adjacent, c)
			}
		}
		switch {
		case len(same) > 0:
			byRoom = same
		case len(adjacent) > 0:
			byRoom = adjacent
			adjacentTier = true
		}
	}
	set.AdjacentTier = adjacentTier

	// Step 4: score and order.
	for _, c := range byRoom {
		set.Comparables = append(set.Comparables, Comparable{
			Listing:  c.l,
			Score:    m.similarity(target, c.l, c.locQuality),
			Adjacent: adjacentTier,
		})
	}
	sort.SliceStable(set.Comparables, func(i, j int) bool {
		a, b := set.Comparables[i], set.Comparables[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Listing.LastSeen.Equal(b.Listing.LastSeen) {
			return a.Listing.LastSeen.After(b.Listing.LastSeen)
		}
		return a.Listing.URL < b.Listing.URL
	})

	return set
}

// locationKey resolves the comparability key for a listing, preferring
// the stored normalized neighborhood.
func (m *Matcher) locationKey(l listing.Listing) string {
	if l.Neighborhood != nil && *l.Neighborhood != "" {
		return *l.Neighborhood
	}
	return m.norm.Normalize(l.RawLocation)
}

// locationMatch returns the location quality (1.0 exact, scaled for
// fuzzy) and whether the candidate is geographically comparable.
func (m *Matcher) locationMatch(targetLoc string, r listing.Listing) (float64, bool) {
	if targetLoc == "" {
		return 0, false
	}
	candLoc := m.locationKey(r)
	if candLoc == targetLoc {
		return 1.0, true
	}
	score := location.Score(location.Clean(candLoc), location.Clean(targetLoc))
	if score >= m.params.LocationThreshold {
		return float64(score) / 100, true
	}
	return 0, false
}

// similarity combines location quality, size closeness and room-type
// closeness into one weighted 0..1 score, skipping dimensions that are
// missing on either side.
func (m *Matcher) similarity(target, cand listing.Listing, locQuality float64) float64 {
	sum := weightLocation * locQuality
	weights := weightLocation

	if target.Size != nil && *target.Size > 0 && cand.Size != nil && *cand.Size > 0 {
		closeness := 1 - abs(*cand.Size-*target.Size)/(*target.Size)
		if closeness < 0 {
			closeness = 0
		}
		sum += weightSize * closeness
		weights += weightSize
	}

	if target.RoomType != nil && cand.RoomType != nil {
		var closeness float64
		switch diff(*cand.RoomType, *target.RoomType) {
		case 0:
			closeness = 1
		case 1:
			closeness = 0.5
		}
		sum += weightRoomType * closeness
		weights += weightRoomType
	}

	return sum / weights
}

// candidate pairs a pool listing with its location match quality while
// the filter pipeline runs.
type candidate struct {
	l          listing.Listing
	locQuality float64
}

func filterBySize(candidates []candidate, targetSize, tolerance float64) []candidate {
	lower := targetSize * (1 - tolerance)
	upper := targetSize * (1 + tolerance)

	var kept []candidate
	for _, c := range candidates {
		if c.l.Size == nil || *c.l.Size <= 0 {
			continue
		}
		if *c.l.Size >= lower && *c.l.Size <= upper {
			kept = append(kept, c)
		}
	}
	return kept
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func diff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
