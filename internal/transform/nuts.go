// Package transform holds the pure code classifiers the pipeline applies to
// natural keys: NUTS region codes, EDGAR sector codes, gas/substance codes,
// ICD-10 group codes and calendar periods. Every function is total over its
// input domain and falls back to a lenient default rather than failing.
package transform

import "strings"

// NUTS levels derived from code length.
const (
	LevelCountry = 0
	LevelNUTS1   = 1
	LevelNUTS2   = 2
	LevelNUTS3   = 3
)

// NormalizeNUTS canonicalizes a region code: trimmed, upper-case.
func NormalizeNUTS(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NUTSLevel derives the geographic level from code length: 2 chars is a
// country, 3 NUTS1, 4 NUTS2, anything else NUTS3 or finer.
func NUTSLevel(code string) int {
	switch len(strings.TrimSpace(code)) {
	case 2:
		return LevelCountry
	case 3:
		return LevelNUTS1
	case 4:
		return LevelNUTS2
	default:
		return LevelNUTS3
	}
}
