package tidy

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/climate-health-cli/internal/fetcher"
	"github.com/sells-group/climate-health-cli/internal/transform"
)

// EurostatRecord is one melted observation from a Eurostat long-format
// table. Dims holds the dimension values parsed from the composite first
// column, keyed by the names the header declares.
type EurostatRecord struct {
	Dims  map[string]string
	Geo   string
	Year  int
	Value float64
}

// geoDim is the dimension name Eurostat uses for the region code once the
// "\TIME_PERIOD" marker is cut from the composite header.
const geoDim = "geo"

// ReadEurostat melts a Eurostat TSV: the first column is a comma-joined
// composite of dimension values (its header declares the dimension names,
// the last being `geo\TIME_PERIOD`), the remaining columns are years.
func ReadEurostat(path string) ([]EurostatRecord, *Report, error) {
	header, rows, err := fetcher.ReadTSV(path)
	if err != nil {
		return nil, nil, err
	}
	if len(header) < 2 {
		return nil, nil, eris.Errorf("eurostat: %s: header has no year columns", path)
	}

	dimNames := strings.Split(header[0], ",")
	last := dimNames[len(dimNames)-1]
	if i := strings.IndexByte(last, '\\'); i >= 0 {
		last = last[:i]
	}
	dimNames[len(dimNames)-1] = strings.TrimSpace(last)

	type yearCol struct {
		col  int
		year int
	}
	var yearCols []yearCol
	for i := 1; i < len(header); i++ {
		if y, ok := parseYear(header[i]); ok {
			yearCols = append(yearCols, yearCol{i, y})
		}
	}
	if len(yearCols) == 0 {
		return nil, nil, eris.Errorf("eurostat: %s: header has no year columns", path)
	}

	rep := newReport()
	var records []EurostatRecord
	for _, row := range rows {
		rep.RowsIn++

		values := strings.Split(cell(row, 0), ",")
		if len(values) != len(dimNames) {
			rep.drop("malformed_dimensions")
			continue
		}
		dims := make(map[string]string, len(dimNames))
		for i, name := range dimNames {
			dims[name] = strings.TrimSpace(values[i])
		}

		geo := transform.NormalizeNUTS(dims[geoDim])
		if geo == "" {
			rep.drop("missing_region")
			continue
		}

		for _, yc := range yearCols {
			value, ok := parseValue(cell(row, yc.col))
			if !ok {
				rep.drop("missing_value")
				continue
			}
			records = append(records, EurostatRecord{
				Dims:  dims,
				Geo:   geo,
				Year:  yc.year,
				Value: value,
			})
			rep.RowsOut++
		}
	}
	return records, rep, nil
}
