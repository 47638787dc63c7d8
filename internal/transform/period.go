package transform

import "strconv"

// Decade floors a year to its decade (2017 -> 2010).
func Decade(year int) int {
	return year / 10 * 10
}

// IsLeapYear applies the Gregorian rule: divisible by 4 and either not
// divisible by 100 or divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// YearLabel is the textual form of the year for the time dimension.
func YearLabel(year int) string {
	return strconv.Itoa(year)
}
