package renewal

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizePlate returns the canonical key form of a license plate:
// NFC-normalised, upper-cased, with all whitespace removed.
func NormalizePlate(plate string) string {
	plate = norm.NFC.String(plate)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, plate)
}

// NormalizePlates normalises each plate, drops blanks and removes duplicates
// while keeping the first occurrence order.
func NormalizePlates(plates []string) []string {
	out := make([]string, 0, len(plates))
	seen := make(map[string]struct{}, len(plates))
	for _, p := range plates {
		n := NormalizePlate(p)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
