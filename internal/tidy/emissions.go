package tidy

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/climate-health-cli/internal/fetcher"
	"github.com/sells-group/climate-health-cli/internal/model"
	"github.com/sells-group/climate-health-cli/internal/transform"
)

// DefaultSheets maps EDGAR workbook sheet names to gas-family labels. The
// label substitutes for the Substance column when a row leaves it blank.
var DefaultSheets = map[string]string{
	"Fossil CO2 AR5": "fossil_co2",
	"CH4_AR5":        "ch4",
	"N2O_AR5":        "n2o",
	"F-gas AR5":      "f_gas",
}

// EmissionsSkipRows is the fixed banner row count above the header row in
// every EDGAR sheet.
const EmissionsSkipRows = 5

// Identifying columns of an EDGAR sheet; everything prefixed Y_ is a year.
const (
	colSubstance   = "Substance"
	colISO         = "ISO"
	colCountry     = "Country"
	colNUTS        = "NUTS 2"
	colNUTSLabel   = "NUTS 2 desc"
	colSector      = "Sector"
	yearColPrefix  = "Y_"
)

// Emissions reads the multi-sheet emissions workbook and melts each sheet's
// wide year columns into tidy (region, year, gas, sector, value) records.
// A nil sheets map uses DefaultSheets; sectorGroups overrides the default
// sector-to-group mapping.
func Emissions(path string, sheets map[string]string, sectorGroups map[string]string) ([]model.EmissionRecord, *Report, error) {
	if sheets == nil {
		sheets = DefaultSheets
	}

	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	rep := newReport()
	var records []model.EmissionRecord
	for _, sheet := range names {
		rows, err := fetcher.ReadSheet(path, fetcher.SheetOptions{SheetName: sheet, SkipRows: EmissionsSkipRows})
		if err != nil {
			return nil, nil, err
		}
		recs, err := tidyEmissionsSheet(rows, sheets[sheet], sectorGroups, rep)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "tidy: sheet %q", sheet)
		}
		records = append(records, recs...)
	}
	return records, rep, nil
}

// tidyEmissionsSheet melts one sheet. rows[0] must be the header row.
func tidyEmissionsSheet(rows [][]string, gasLabel string, sectorGroups map[string]string, rep *Report) ([]model.EmissionRecord, error) {
	if len(rows) == 0 {
		return nil, eris.New("empty sheet")
	}

	idx := headerIndex(rows[0])
	for _, col := range []string{colSubstance, colISO, colCountry, colNUTS, colNUTSLabel, colSector} {
		if _, ok := idx[col]; !ok {
			return nil, eris.Errorf("column %q not found", col)
		}
	}

	type yearCol struct {
		col  int
		year int
	}
	var yearCols []yearCol
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if !strings.HasPrefix(name, yearColPrefix) {
			continue
		}
		if y, ok := parseYear(strings.TrimPrefix(name, yearColPrefix)); ok {
			yearCols = append(yearCols, yearCol{i, y})
		}
	}
	if len(yearCols) == 0 {
		return nil, eris.New("no year columns")
	}

	var records []model.EmissionRecord
	for _, row := range rows[1:] {
		rep.RowsIn++

		nuts := transform.NormalizeNUTS(cell(row, idx[colNUTS]))
		if nuts == "" {
			rep.drop("missing_region")
			continue
		}

		gas := strings.TrimSpace(cell(row, idx[colSubstance]))
		if gas == "" {
			gas = gasLabel
		}
		sector := strings.TrimSpace(cell(row, idx[colSector]))

		for _, yc := range yearCols {
			value, ok := parseValue(cell(row, yc.col))
			if !ok {
				rep.drop("missing_value")
				continue
			}
			records = append(records, model.EmissionRecord{
				NUTSID:      nuts,
				NUTSLabel:   strings.TrimSpace(cell(row, idx[colNUTSLabel])),
				CountryISO:  strings.ToUpper(strings.TrimSpace(cell(row, idx[colISO]))),
				CountryName: strings.TrimSpace(cell(row, idx[colCountry])),
				Year:        yc.year,
				Gas:         gas,
				Sector:      sector,
				SectorGroup: transform.GroupSector(sector, sectorGroups),
				EmissionsKt: value,
			})
			rep.RowsOut++
		}
	}
	return records, nil
}
