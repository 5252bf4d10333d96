package listing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mfaias/propscope/internal/db"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return NewRepository(d)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestUpsertInsertsNew(t *testing.T) {
	repo := testRepo(t)

	l := &Listing{
		URL:          "https://example.com/listing/1",
		Kind:         KindSale,
		Title:        "Apartamento T2 em Arroios",
		RawLocation:  "Arroios, Lisboa",
		Neighborhood: strPtr("Arroios"),
		Size:         floatPtr(70),
		RoomType:     intPtr(2),
		Price:        floatPtr(250000),
	}
	if err := repo.Upsert(l); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.GetByURL(l.URL)
	if err != nil {
		t.Fatalf("get by url: %v", err)
	}
	if got.Kind != KindSale {
		t.Errorf("kind = %q, want sale", got.Kind)
	}
	if got.Price == nil || *got.Price != 250000 {
		t.Errorf("price = %v, want 250000", got.Price)
	}
	if got.FirstSeen.IsZero() || got.LastSeen.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	repo := testRepo(t)

	first := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	l := &Listing{
		URL:       "https://example.com/listing/2",
		Kind:      KindRental,
		Price:     floatPtr(1000),
		FirstSeen: first,
		LastSeen:  first,
	}
	if err := repo.Upsert(l); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Re-scrape of the same URL with a new price and snapshot date.
	later := first.AddDate(0, 1, 0)
	update := &Listing{
		URL:       l.URL,
		Kind:      KindRental,
		Price:     floatPtr(1100),
		FirstSeen: later,
		LastSeen:  later,
	}
	if err := repo.Upsert(update); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rentals, err := repo.ListByKind(KindRental, ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rentals) != 1 {
		t.Fatalf("got %d listings, want 1 (no duplicate for re-scraped URL)", len(rentals))
	}
	got := rentals[0]
	if got.Price == nil || *got.Price != 1100 {
		t.Errorf("price = %v, want updated 1100", got.Price)
	}
	if !got.LastSeen.Equal(later) {
		t.Errorf("last_seen = %v, want %v", got.LastSeen, later)
	}
	if !got.FirstSeen.Equal(first) {
		t.Errorf("first_seen = %v, want preserved %v", got.FirstSeen, first)
	}
}

func TestUpsertRejectsInvalid(t *testing.T) {
	repo := testRepo(t)

	if err := repo.Upsert(&Listing{Kind: KindSale}); err == nil {
		t.Error("expected error for missing URL")
	}
	if err := repo.Upsert(&Listing{URL: "https://example.com/x", Kind: "auction"}); err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestListByKindOrdersAndFilters(t *testing.T) {
	repo := testRepo(t)

	urls := []string{
		"https://example.com/listing/c",
		"https://example.com/listing/a",
		"https://example.com/listing/b",
	}
	for _, u := range urls {
		l := &Listing{URL: u, Kind: KindSale, Neighborhood: strPtr("Arroios")}
		if err := repo.Upsert(l); err != nil {
			t.Fatalf("upsert %s: %v", u, err)
		}
	}
	other := &Listing{URL: "https://example.com/listing/d", Kind: KindSale, Neighborhood: strPtr("Benfica")}
	if err := repo.Upsert(other); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	all, err := repo.ListByKind(KindSale, ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d listings, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].URL > all[i].URL {
			t.Fatalf("listings not in URL order: %s before %s", all[i-1].URL, all[i].URL)
		}
	}

	arroios, err := repo.ListByKind(KindSale, ListOptions{Neighborhood: "Arroios"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(arroios) != 3 {
		t.Errorf("got %d Arroios listings, want 3", len(arroios))
	}

	rentals, err := repo.ListByKind(KindRental, ListOptions{})
	if err != nil {
		t.Fatalf("list rentals: %v", err)
	}
	if len(rentals) != 0 {
		t.Errorf("got %d rentals, want 0", len(rentals))
	}
}

func TestCountByKind(t *testing.T) {
	repo := testRepo(t)

	for i, kind := range []Kind{KindSale, KindSale, KindRental} {
		l := &Listing{URL: "https://example.com/listing/" + string(rune('0'+i)), Kind: kind}
		if err := repo.Upsert(l); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	counts, err := repo.CountByKind()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[KindSale] != 2 || counts[KindRental] != 1 {
		t.Errorf("counts = %v, want sale:2 rental:1", counts)
	}
}

func TestPricePerSqm(t *testing.T) {
	l := &Listing{Price: floatPtr(250000), Size: floatPtr(100)}
	if got := l.PricePerSqm(); got == nil || *got != 2500 {
		t.Errorf("PricePerSqm = %v, want 2500", got)
	}

	noSize := &Listing{Price: floatPtr(250000)}
	if got := noSize.PricePerSqm(); got != nil {
		t.Errorf("PricePerSqm without size = %v, want nil", *got)
	}

	zeroSize := &Listing{Price: floatPtr(250000), Size: floatPtr(0)}
	if got := zeroSize.PricePerSqm(); got != nil {
		t.Errorf("PricePerSqm with zero size = %v, want nil", *got)
	}
}
