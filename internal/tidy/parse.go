package tidy

import (
	"strconv"
	"strings"
)

// missingSentinel is Eurostat's "no data" marker.
const missingSentinel = ":"

// parseValue parses a source cell as a float. The sentinel, empty cells and
// anything non-numeric (including flagged values like "12.3 e") count as
// missing.
func parseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == missingSentinel {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseYear parses a column label as a calendar year.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

// headerIndex builds a trimmed column name to index map.
func headerIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[strings.TrimSpace(col)] = i
	}
	return m
}

// cell returns the i-th field of a record, empty when out of range.
func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
