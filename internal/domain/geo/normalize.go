package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining diacritical marks after NFD decomposition,
// so "São João" and "Sao Joao" normalize to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName produces the canonical matching key for a neighborhood or
// region name: trimmed, lowercased, diacritics removed, inner whitespace
// collapsed. The reconciliation join stays byte-exact; this key is only used
// for neighborhood lookups and pending-neighborhood detection.
func NormalizeName(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.Join(strings.Fields(folded), " ")
}

// NormalizedNeighborhoodIndex maps every catalog neighborhood's normalized
// name to the catalog region that owns it
func NormalizedNeighborhoodIndex() map[string]StaticRegion {
	out := make(map[string]StaticRegion)
	for _, region := range regionCatalog {
		for _, hood := range region.Neighborhoods {
			out[NormalizeName(hood)] = region
		}
	}
	return out
}
