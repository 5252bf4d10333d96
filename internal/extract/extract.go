// Package extract pulls structured attributes out of unstructured
// listing text. Every extractor returns nil when the field cannot be
// found with confidence; none of them error.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mfaias/propscope/internal/location"
)

// typicalSizes holds plausible m² ranges for Lisbon apartments by
// T-code. Used to validate suspicious extractions.
var typicalSizes = map[int][2]float64{
	0: {15, 50},
	1: {30, 80},
	2: {50, 120},
	3: {70, 150},
	4: {90, 200},
	5: {110, 250},
	6: {130, 300},
}

// maxSizeThresholds marks sizes that are implausible outright for a
// T-code. Anything above is assumed to carry a stray leading digit.
var maxSizeThresholds = map[int]float64{
	0: 60, 1: 100, 2: 140, 3: 180, 4: 220, 5: 280, 6: 350,
}

const defaultMaxSize = 400

var (
	concatSizeRe    = regexp.MustCompile(`T([0-6])(\d{2,})\s*m[²2]`)
	separatedSizeRe = regexp.MustCompile(`T([0-6])[\s-]+(\d+(?:[.,]\d+)?)\s*m[²2]`)
	standardSizeRe  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*m[²2]`)
	roomTypeRe      = regexp.MustCompile(`\bT([0-9])\b`)
	bedroomRe       = regexp.MustCompile(`(?i)\b(\d+)\s*(?:bedroom|quarto)s?\b`)
	studioRe        = regexp.MustCompile(`(?i)\b(?:est[úu]dio|studio)\b`)
	numericRe       = regexp.MustCompile(`[\d.,\s]+`)
)

// Size extracts the area in m² from free text. A known corruption
// pattern concatenates the room-type digit onto the real size ("T2 70"
// scraped as "270 m²"); when the extracted value is implausible for the
// room type the spurious leading digit is stripped, provided the
// remainder falls inside the plausible range.
func Size(text string, roomType *int) *float64 {
	if text == "" {
		return nil
	}

	// Room type glued onto the size without a space: "T275 m²".
	if m := concatSizeRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[2], 64); err == nil && v > 0 {
			return &v
		}
	}

	// Room type and size separated: "T2 70 m²", "T2-70 m²".
	if m := separatedSizeRe.FindStringSubmatch(text); m != nil {
		if v, err := parseDecimal(m[2]); err == nil && v > 0 {
			return &v
		}
	}

	// Plain size: "70 m²".
	m := standardSizeRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := parseDecimal(m[1])
	if err != nil || v <= 0 {
		return nil
	}

	if corrected, ok := correctSize(v, m[1], roomType); ok {
		return &corrected
	}
	return &v
}

// correctSize strips a spurious leading digit when size is implausible
// for the room type and the remainder is plausible.
func correctSize(size float64, digits string, roomType *int) (float64, bool) {
	if roomType == nil {
		// Without a room type only reject truly absurd values.
		if size <= defaultMaxSize {
			return 0, false
		}
	}

	maxAllowed := float64(defaultMaxSize)
	bounds := [2]float64{30, 150}
	if roomType != nil {
		if t, ok := maxSizeThresholds[*roomType]; ok {
			maxAllowed = t
		}
		if b, ok := typicalSizes[*roomType]; ok {
			bounds = b
		}
	}
	if size <= maxAllowed {
		return 0, false
	}

	intPart := strings.SplitN(digits, ".", 2)[0]
	intPart = strings.SplitN(intPart, ",", 2)[0]
	if len(intPart) < 3 {
		return 0, false
	}

	candidate, err := strconv.ParseFloat(intPart[1:], 64)
	if err != nil || candidate <= 0 {
		return 0, false
	}
	if candidate >= bounds[0] && candidate <= bounds[1]*1.2 {
		return candidate, true
	}
	return 0, false
}

// RoomType extracts the T-code (studio = 0) from text. Recognizes
// "T<digit>" tokens, bedroom-count phrases and studio markers.
func RoomType(text string) *int {
	if text == "" {
		return nil
	}
	if m := roomTypeRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return &n
		}
	}
	if m := bedroomRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return &n
		}
	}
	if studioRe.MatchString(text) {
		zero := 0
		return &zero
	}
	return nil
}

// Neighborhood resolves text to a canonical neighborhood using the
// shared location table. Returns nil when no known neighborhood is
// found.
func Neighborhood(text string, n *location.Normalizer) *string {
	if text == "" {
		return nil
	}
	if canonical, ok := n.Match(text); ok {
		return &canonical
	}
	return nil
}

// Price parses a currency-denominated amount from text, handling both
// European ("350.000,00 €") and American ("350,000.00") separator
// conventions. Returns nil for unparseable input.
func Price(text string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "€", ""))
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "$", ""))
	if cleaned == "" {
		return nil
	}

	m := numericRe.FindString(cleaned)
	m = strings.TrimSpace(m)
	if m == "" {
		return digitFallback(text)
	}

	dot := strings.LastIndex(m, ".")
	comma := strings.LastIndex(m, ",")
	switch {
	case dot >= 0 && comma >= 0 && dot < comma:
		// European: "350.000,00"
		m = strings.ReplaceAll(m, ".", "")
		m = strings.ReplaceAll(m, ",", ".")
	case dot >= 0 && comma >= 0:
		// American: "350,000.00"
		m = strings.ReplaceAll(m, ",", "")
	case comma >= 0:
		if len(m)-comma-1 <= 2 {
			m = strings.ReplaceAll(m, ",", ".") // decimal comma
		} else {
			m = strings.ReplaceAll(m, ",", "") // thousands comma
		}
	case dot >= 0:
		if len(m)-dot-1 > 2 {
			m = strings.ReplaceAll(m, ".", "") // "350.000" thousands dot
		}
	}
	m = strings.ReplaceAll(m, " ", "")

	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v <= 0 {
		return digitFallback(text)
	}
	return &v
}

func digitFallback(text string) *float64 {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
