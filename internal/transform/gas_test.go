package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGas(t *testing.T) {
	tests := []struct {
		code    string
		name    string
		formula string
		gwp     float64
		known   bool
	}{
		{"CH4", "Methane", "CH₄", 28.0, true},
		{"ch4", "Methane", "CH₄", 28.0, true},
		{"GWP_100_AR5_CH4", "Methane", "CH₄", 28.0, true},
		{"N2O_AR5", "Nitrous Oxide", "N₂O", 265.0, true},
		{"Nitrous oxide", "Nitrous Oxide", "N₂O", 265.0, true},
		{"F-gas AR5", "Fluorinated Gases", "F-gases", 1000.0, true},
		{"f_gas", "Fluorinated Gases", "F-gases", 1000.0, true},
		{"fossil_co2", "Carbon Dioxide", "CO₂", 1.0, true},
		{"CO2", "Carbon Dioxide", "CO₂", 1.0, true},
		{"Carbon dioxide", "Carbon Dioxide", "CO₂", 1.0, true},
	}
	for _, tt := range tests {
		info := ClassifyGas(tt.code)
		assert.Equal(t, tt.name, info.Name, "code: %q", tt.code)
		assert.Equal(t, tt.formula, info.Formula, "code: %q", tt.code)
		assert.Equal(t, tt.gwp, info.GWPAR5, "code: %q", tt.code)
		assert.Equal(t, tt.known, info.Known, "code: %q", tt.code)
	}
}

func TestClassifyGasMethaneBeforeCO2(t *testing.T) {
	// Composite labels carry both substrings; the methane rule must win.
	info := ClassifyGas("CH4 in CO2eq")
	assert.Equal(t, "Methane", info.Name)
}

func TestClassifyGasUnknown(t *testing.T) {
	info := ClassifyGas("SF6-special")
	assert.Equal(t, "SF6-special", info.Name)
	assert.Empty(t, info.Formula)
	assert.Zero(t, info.GWPAR5)
	assert.False(t, info.Known)
}
