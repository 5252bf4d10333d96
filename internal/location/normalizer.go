// Package location canonicalizes free-text location strings to
// comparable neighborhood keys.
package location

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum 0-100 similarity score a fuzzy match
// must reach before it is accepted.
const DefaultThreshold = 70

// Normalizer maps raw location text to canonical neighborhood names
// using a variant table with a fuzzy fallback.
type Normalizer struct {
	variants  map[string]string // cleaned variant -> canonical
	keys      []string          // variant keys, longest first
	threshold int
}

// New creates a Normalizer with the default Lisbon neighborhood table.
func New(threshold int) *Normalizer {
	return NewFromTable(defaultVariants, threshold)
}

// NewFromTable creates a Normalizer from a custom variant table.
// Keys are cleaned before lookup so callers may use accented forms.
func NewFromTable(table map[string]string, threshold int) *Normalizer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	n := &Normalizer{
		variants:  make(map[string]string, len(table)),
		threshold: threshold,
	}
	for k, v := range table {
		ck := Clean(k)
		if ck == "" {
			continue
		}
		n.variants[ck] = v
		n.keys = append(n.keys, ck)
	}
	// Longest keys first so "anjos arroios" wins over "anjos".
	sort.Slice(n.keys, func(i, j int) bool {
		if len(n.keys[i]) != len(n.keys[j]) {
			return len(n.keys[i]) > len(n.keys[j])
		}
		return n.keys[i] < n.keys[j]
	})

	return n
}

var (
	streetPrefixRe = regexp.MustCompile(`\b(rua|travessa|estrada|beco)\b`)
	nonWordRe      = regexp.MustCompile(`[^\p{L}\d\s]`)
	digitsRe       = regexp.MustCompile(`\d+`)
	spacesRe       = regexp.MustCompile(`\s+`)
)

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "è", "e", "ê", "e",
	"í", "i", "ì", "i", "î", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o",
	"ú", "u", "ù", "u", "û", "u",
	"ç", "c",
)

// Clean lowercases text, strips accents, street-type prefixes, digits
// and punctuation, and collapses whitespace.
func Clean(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = accentReplacer.Replace(t)
	t = nonWordRe.ReplaceAllString(t, " ")
	t = streetPrefixRe.ReplaceAllString(t, " ")
	t = digitsRe.ReplaceAllString(t, " ")
	return spacesRe.ReplaceAllString(strings.TrimSpace(t), " ")
}

// Normalize returns the canonical neighborhood name for raw location
// text. Lookup order: exact variant match on the cleaned text, variant
// contained in the text, then fuzzy match against the variant table at
// or above the threshold. When nothing matches the cleaned text is
// returned unchanged, so Normalize never fails and is idempotent for
// already-canonical names.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := Clean(raw)
	if cleaned == "" {
		return strings.TrimSpace(raw)
	}

	if canonical, ok := n.variants[cleaned]; ok {
		return canonical
	}

	for _, key := range n.keys {
		if containsPhrase(cleaned, key) {
			return n.variants[key]
		}
	}

	if canonical, ok := n.fuzzyMatch(cleaned); ok {
		return canonical
	}

	return cleaned
}

// Match is like Normalize but reports whether the text resolved to a
// known canonical name.
func (n *Normalizer) Match(raw string) (string, bool) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return "", false
	}
	if canonical, ok := n.variants[cleaned]; ok {
		return canonical, true
	}
	for _, key := range n.keys {
		if containsPhrase(cleaned, key) {
			return n.variants[key], true
		}
	}
	return n.fuzzyMatch(cleaned)
}

func (n *Normalizer) fuzzyMatch(cleaned string) (string, bool) {
	best := ""
	bestScore := 0
	for _, key := range n.keys {
		if len(key) < 4 {
			continue
		}
		if s := Score(cleaned, key); s > bestScore {
			bestScore = s
			best = n.variants[key]
		}
	}
	if bestScore >= n.threshold {
		return best, true
	}
	return "", false
}

// Threshold returns the similarity threshold in use.
func (n *Normalizer) Threshold() int {
	return n.threshold
}

// Score computes a 0-100 similarity between two strings from their
// normalized edit distance. Identical strings score 100.
func Score(a, b string) int {
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 - (100*d)/longest
}

// containsPhrase reports whether phrase appears in text on word
// boundaries. Plain substring search would turn "covelo" into a hit
// for "velo".
func containsPhrase(text, phrase string) bool {
	idx := strings.Index(text, phrase)
	for idx >= 0 {
		before := idx == 0 || text[idx-1] == ' '
		end := idx + len(phrase)
		after := end == len(text) || text[end] == ' '
		if before && after {
			return true
		}
		next := strings.Index(text[idx+1:], phrase)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}
