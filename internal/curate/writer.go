package curate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/climate-health-cli/internal/model"
)

// CuratedHeader returns the curated CSV column order for a given sector
// column set: identity columns, emissions, population and per-capita, then
// the health metric columns in their fixed order.
func CuratedHeader(sectorColumns []string) []string {
	header := []string{"nuts_id", "year", "nuts_label", "country_iso", "country_name", "total_emissions_kt"}
	for _, group := range sectorColumns {
		header = append(header, "emissions_"+group+"_kt")
	}
	header = append(header, "population", "emissions_per_capita_tonnes")
	for _, mc := range CauseRateColumns {
		header = append(header, mc.Column)
	}
	for _, mc := range DischargeColumns {
		header = append(header, mc.Column)
	}
	for _, mc := range DischargeColumns {
		header = append(header, mc.Column+"_per_100k")
	}
	return header
}

// WriteCurated writes the curated rows as one wide CSV. Sector columns
// absent from a row write as 0 (the row had no emissions in that group);
// absent health metrics write as empty cells.
func WriteCurated(path string, rows []model.CuratedRow, sectorColumns []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "curate: create dir for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "curate: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CuratedHeader(sectorColumns)); err != nil {
		return eris.Wrapf(err, "curate: write header %s", path)
	}

	for _, row := range rows {
		record := []string{
			row.NUTSID,
			strconv.Itoa(row.Year),
			row.NUTSLabel,
			row.CountryISO,
			row.CountryName,
			formatFloat(row.TotalEmissionsKt),
		}
		for _, group := range sectorColumns {
			record = append(record, formatFloat(row.SectorKt[group]))
		}
		record = append(record, formatFloat(row.Population), formatFloat(row.PerCapitaTonnes))
		for _, mc := range CauseRateColumns {
			record = append(record, optionalCell(row.CauseRates, mc.Column))
		}
		for _, mc := range DischargeColumns {
			record = append(record, optionalCell(row.DischargeCounts, mc.Column))
		}
		for _, mc := range DischargeColumns {
			record = append(record, optionalCell(row.DischargeRates, mc.Column+"_per_100k"))
		}
		if err := w.Write(record); err != nil {
			return eris.Wrapf(err, "curate: write %s", path)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "curate: write %s", path)
	}
	return eris.Wrapf(f.Close(), "curate: close %s", path)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalCell(metrics map[string]float64, column string) string {
	v, ok := metrics[column]
	if !ok {
		return ""
	}
	return formatFloat(v)
}
