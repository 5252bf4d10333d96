package extract

import (
	"testing"

	"github.com/mfaias/propscope/internal/location"
)

func intPtr(n int) *int { return &n }

func TestSize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		roomType *int
		want     float64
		wantNil  bool
	}{
		{"plain", "Apartamento com 70 m²", nil, 70, false},
		{"decimal comma", "52,5 m²", nil, 52.5, false},
		{"m2 marker", "85 m2 com varanda", nil, 85, false},
		{"concatenated room type", "T275 m², centro", intPtr(2), 75, false},
		{"separated room type", "T2 70 m²", intPtr(2), 70, false},
		{"hyphen separated", "T3-110 m²", intPtr(3), 110, false},
		{"stray leading digit corrected", "270 m², T3", intPtr(3), 70, false},
		{"large but plausible kept", "T6 290 m²", intPtr(6), 290, false},
		{"no size", "Excelente apartamento no centro", nil, 0, true},
		{"empty", "", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Size(tt.text, tt.roomType)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Size(%q) = %v, want nil", tt.text, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Size(%q) = nil, want %v", tt.text, tt.want)
			}
			if *got != tt.want {
				t.Errorf("Size(%q) = %v, want %v", tt.text, *got, tt.want)
			}
		})
	}
}

func TestSizeKeepsPlausibleValue(t *testing.T) {
	// 120 m² is inside the T2 plausible band; no correction applies.
	got := Size("120 m²", intPtr(2))
	if got == nil || *got != 120 {
		t.Fatalf("Size = %v, want 120", got)
	}
}

func TestRoomType(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantNil bool
	}{
		{"t code", "Apartamento T2 em Arroios", 2, false},
		{"studio", "Estúdio mobilado", 0, false},
		{"studio english", "Cozy studio near metro", 0, false},
		{"bedrooms", "2 bedroom apartment", 2, false},
		{"quartos", "Apartamento com 3 quartos", 3, false},
		{"none", "Loja no centro", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoomType(tt.text)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("RoomType(%q) = %v, want nil", tt.text, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("RoomType(%q) = nil, want %d", tt.text, tt.want)
			}
			if *got != tt.want {
				t.Errorf("RoomType(%q) = %d, want %d", tt.text, *got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		wantNil bool
	}{
		{"comma thousands", "350,000 €", 350000, false},
		{"dot thousands", "350.000 €", 350000, false},
		{"no space", "350.000€", 350000, false},
		{"leading symbol", "€350,000", 350000, false},
		{"bare", "350000€", 350000, false},
		{"american decimals", "350,000.00 €", 350000, false},
		{"european decimals", "350.000,00 €", 350000, false},
		{"space separated", "350 000 €", 350000, false},
		{"decimal comma", "1.050,50", 1050.5, false},
		{"garbage", "Invalid price", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(tt.text)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Price(%q) = %v, want nil", tt.text, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Price(%q) = nil, want %v", tt.text, tt.want)
			}
			if *got != tt.want {
				t.Errorf("Price(%q) = %v, want %v", tt.text, *got, tt.want)
			}
		})
	}
}

func TestNeighborhood(t *testing.T) {
	n := location.New(location.DefaultThreshold)

	got := Neighborhood("Apartamento T1 em Alcântara", n)
	if got == nil || *got != "Alcântara" {
		t.Fatalf("Neighborhood = %v, want Alcântara", got)
	}

	if got := Neighborhood("Moradia no Algarve", n); got != nil {
		t.Errorf("Neighborhood = %q, want nil for unknown area", *got)
	}
	if got := Neighborhood("", n); got != nil {
		t.Errorf("Neighborhood(\"\") = %q, want nil", *got)
	}
}
