package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		leap bool
	}{
		{2000, true},  // divisible by 400
		{1900, false}, // century, not divisible by 400
		{2024, true},
		{2023, false},
		{2020, true},
		{2100, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.leap, IsLeapYear(tt.year), "year: %d", tt.year)
	}
}

func TestDecade(t *testing.T) {
	assert.Equal(t, 2010, Decade(2017))
	assert.Equal(t, 2020, Decade(2020))
	assert.Equal(t, 1990, Decade(1999))
}

func TestYearLabel(t *testing.T) {
	assert.Equal(t, "2019", YearLabel(2019))
}
