package transform

import "strings"

// GasInfo describes a greenhouse gas resolved from a raw substance code.
// Known is false for the final fallback, which carries the code as the name
// and no formula or GWP.
type GasInfo struct {
	Name    string
	Formula string
	GWPAR5  float64
	Known   bool
}

// gasFamilies are keyword rules checked in order against the upper-cased
// code. Substance codes vary wildly (short codes, GWP_100_AR5_* labels,
// descriptive names), so substring matching comes before the exact table.
// CO2 is checked last: many composite labels contain "CO2" alongside the
// actual gas (e.g. "CH4 in CO2eq").
var gasFamilies = []struct {
	keywords []string
	info     GasInfo
}{
	{[]string{"CH4", "METHANE"}, GasInfo{"Methane", "CH₄", 28.0, true}},
	{[]string{"N2O", "NITROUS"}, GasInfo{"Nitrous Oxide", "N₂O", 265.0, true}},
	// F-gases span GWPs from ~1,000 to ~23,000; aggregate data uses a
	// representative value.
	{[]string{"F-GASES", "F-GAS", "F_GAS", "FLUORINATED"}, GasInfo{"Fluorinated Gases", "F-gases", 1000.0, true}},
	{[]string{"CO2", "CARBON"}, GasInfo{"Carbon Dioxide", "CO₂", 1.0, true}},
}

// gasCodes is the exact-code fallback table for codes the keyword rules
// cannot see (none today, kept for codes that drop the family substring).
var gasCodes = map[string]GasInfo{
	"CO2":        {"Carbon Dioxide", "CO₂", 1.0, true},
	"CH4":        {"Methane", "CH₄", 28.0, true},
	"N2O":        {"Nitrous Oxide", "N₂O", 265.0, true},
	"F-GAS":      {"Fluorinated Gases", "F-gases", 1000.0, true},
	"FOSSIL_CO2": {"Fossil CO2", "CO₂", 1.0, true},
}

// ClassifyGas resolves a raw substance code to gas metadata: keyword match
// against known gas families first, exact-code lookup second, and finally
// the code itself as the name with no formula or GWP.
func ClassifyGas(code string) GasInfo {
	upper := strings.ToUpper(strings.TrimSpace(code))

	for _, fam := range gasFamilies {
		for _, kw := range fam.keywords {
			if strings.Contains(upper, kw) {
				return fam.info
			}
		}
	}

	if info, ok := gasCodes[upper]; ok {
		return info
	}

	return GasInfo{Name: code}
}
