package ingest

import (
	"testing"

	"github.com/mfaias/propscope/internal/listing"
	"github.com/mfaias/propscope/internal/location"
)

func testMaterializer() *Materializer {
	return NewMaterializer(location.New(location.DefaultThreshold))
}

func TestMaterialize(t *testing.T) {
	m := testMaterializer()

	raw := RawRecord{
		URL:          "https://portal.example/imovel/123",
		Title:        "Apartamento T2 em Arroios",
		PriceText:    "350.000 €",
		LocationText: "Arroios, Lisboa",
		DetailsText:  "T2 70 m² 3º andar",
	}

	l, err := m.Materialize(raw, listing.KindSale)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if l.URL != raw.URL {
		t.Errorf("url = %q", l.URL)
	}
	if l.Kind != listing.KindSale {
		t.Errorf("kind = %q", l.Kind)
	}
	if l.Price == nil || *l.Price != 350000 {
		t.Errorf("price = %v, want 350000", l.Price)
	}
	if l.Size == nil || *l.Size != 70 {
		t.Errorf("size = %v, want 70", l.Size)
	}
	if l.RoomType == nil || *l.RoomType != 2 {
		t.Errorf("room type = %v, want 2", l.RoomType)
	}
	if l.Neighborhood == nil || *l.Neighborhood != "Arroios" {
		t.Errorf("neighborhood = %v, want Arroios", l.Neighborhood)
	}
	if l.FirstSeen.IsZero() || l.LastSeen.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestMaterializeUnparseableFieldsBecomeNull(t *testing.T) {
	m := testMaterializer()

	raw := RawRecord{
		URL:       "https://portal.example/imovel/456",
		Title:     "Moradia para venda",
		PriceText: "Preço sob consulta",
	}

	l, err := m.Materialize(raw, listing.KindSale)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if l.Price != nil || l.Size != nil || l.RoomType != nil || l.Neighborhood != nil {
		t.Errorf("unparseable fields must be null: %+v", l)
	}
}

func TestMaterializeFallsBackToTitle(t *testing.T) {
	m := testMaterializer()

	raw := RawRecord{
		URL:   "https://portal.example/imovel/789",
		Title: "T3 de 95 m² no centro",
	}

	l, err := m.Materialize(raw, listing.KindRental)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if l.RoomType == nil || *l.RoomType != 3 {
		t.Errorf("room type = %v, want 3 from title", l.RoomType)
	}
	if l.Size == nil || *l.Size != 95 {
		t.Errorf("size = %v, want 95 from title", l.Size)
	}
}

func TestMaterializeRejectsMissingURL(t *testing.T) {
	m := testMaterializer()
	if _, err := m.Materialize(RawRecord{Title: "sem link"}, listing.KindSale); err == nil {
		t.Fatal("expected error for record without url")
	}
	if _, err := m.Materialize(RawRecord{URL: "   "}, listing.KindSale); err == nil {
		t.Fatal("expected error for blank url")
	}
}

func TestMaterializeRejectsInvalidKind(t *testing.T) {
	m := testMaterializer()
	if _, err := m.Materialize(RawRecord{URL: "https://x/1"}, listing.Kind("auction")); err == nil {
		t.Fatal("expected error for invalid kind")
	}
}

func TestMaterializeAll(t *testing.T) {
	m := testMaterializer()

	raws := []RawRecord{
		{URL: "https://x/1", Title: "T2 70 m²", PriceText: "1.100 €"},
		{URL: "https://x/2", Title: "Apartamento", PriceText: "sob consulta"},
		{Title: "sem url"},
	}

	out, stats := m.MaterializeAll(raws, listing.KindRental)
	if len(out) != 2 {
		t.Fatalf("got %d listings, want 2", len(out))
	}
	if stats.Materialized != 2 {
		t.Errorf("materialized = %d, want 2", stats.Materialized)
	}
	if stats.SkippedNoURL != 1 {
		t.Errorf("skipped = %d, want 1", stats.SkippedNoURL)
	}
	if stats.MissingPrice != 1 {
		t.Errorf("missing price = %d, want 1", stats.MissingPrice)
	}
}
