package tidy

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/climate-health-cli/internal/model"
)

// Interchange file columns. These CSVs are how pipeline stages hand tidy
// tables to each other; readers validate the header so a stale or foreign
// file fails fast instead of loading garbage.
var (
	emissionsColumns = []string{"nuts_id", "nuts_label", "country_iso", "country_name", "year", "gas", "sector", "sector_group", "emissions_kt_co2e"}
	causesColumns    = []string{"geo", "year", "frequency", "unit_code", "sex", "age_group", "icd10_group", "age_standardised_rate_per_100k"}
	dischargeColumns = []string{"geo", "year", "frequency", "indicator", "unit_code", "sex", "age_group", "icd10_group", "discharges"}
	popColumns       = []string{"geo", "year", "population"}
)

// WriteEmissionsCSV writes tidy emissions records to an interchange CSV.
func WriteEmissionsCSV(path string, records []model.EmissionRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.NUTSID, r.NUTSLabel, r.CountryISO, r.CountryName,
			strconv.Itoa(r.Year), r.Gas, r.Sector, r.SectorGroup,
			fmtFloat(r.EmissionsKt),
		})
	}
	return writeCSV(path, emissionsColumns, rows)
}

// ReadEmissionsCSV reads tidy emissions records back from an interchange CSV.
func ReadEmissionsCSV(path string) ([]model.EmissionRecord, error) {
	rows, err := readCSV(path, emissionsColumns)
	if err != nil {
		return nil, err
	}
	records := make([]model.EmissionRecord, 0, len(rows))
	for i, row := range rows {
		year, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, eris.Wrapf(err, "tidy: %s row %d: year", path, i+2)
		}
		kt, err := strconv.ParseFloat(row[8], 64)
		if err != nil {
			return nil, eris.Wrapf(err, "tidy: %s row %d: emissions_kt_co2e", path, i+2)
		}
		records = append(records, model.EmissionRecord{
			NUTSID: row[0], NUTSLabel: row[1], CountryISO: row[2], CountryName: row[3],
			Year: year, Gas: row[5], Sector: row[6], SectorGroup: row[7],
			EmissionsKt: kt,
		})
	}
	return records, nil
}

// WriteCausesCSV writes tidy causes-of-death records.
func WriteCausesCSV(path string, records []model.CauseRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Geo, strconv.Itoa(r.Year), r.Frequency, r.UnitCode, r.Sex,
			r.AgeGroup, r.ICD10Group, fmtFloat(r.Rate),
		})
	}
	return writeCSV(path, causesColumns, rows)
}

// ReadCausesCSV reads tidy causes-of-death records.
func ReadCausesCSV(path string) ([]model.CauseRecord, error) {
	rows, err := readCSV(path, causesColumns)
	if err != nil {
		return nil, err
	}
	records := make([]model.CauseRecord, 0, len(rows))
	for i, row := range rows {
		year, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, eris.Wrapf(err, "tidy: %s row %d: year", path, i+2)
		}
		rate, err := strconv.ParseFloat(row[7], 64)
		if err != nil {
			return nil, eris.Wrapf(err, "tidy: %s row %d: rate", path, i+2)
		}
		records = append(records, model.CauseRecord{
			Geo: row[0], Year: year, Frequency: row[2], UnitCode: row[3],
			Sex: row[4], AgeGroup: row[5], ICD10Group: row[6], Rate: rate,
		})
	}
	return records, nil
}

// WriteDischargesCSV writes tidy hospital-discharge records.
func WriteDischargesCSV(path string, records []model.DischargeRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Geo, strconv.Itoa(r.Year), r.Frequency, r.Indicator, r.UnitCode,
			r.Sex, r.AgeGroup, r.ICD10Group, fmtFloat(r.Discharges),
		})
	}
	return writeCSV(path, dischargeColumns, rows)
}

// ReadDischargesCSV reads tidy hospital-discharge records.
func ReadDischargesCSV(path string) ([]model.DischargeRecord, error) {
	rows, err := readCSV(path, dischargeColumns)
	if err != nil {
		return nil, err
	}
	records := make([]model.DischargeRecord, 0, len(rows))
	for i, row := range rows {
		year, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, eris.Wrapf(err, "tidy: %s row %d: year", path, i+2)
		}
		count, err := strconv.ParseFloat(row[8], 64)
		if err != nil {
			return nil, eris.Wrapf(err, "tidy: %s row %d: discharges", path, i+2)
		}
		records = append(records, model.DischargeRecord{
			Geo: row[0], Year: year, Frequency: row[2], Indicator: row[3],
			UnitCode: row[4], Sex: row[5], AgeGroup: row[6], ICD10Group: row[7],
			Discharges: count,
		})
	}
	return records, nil
}

// WritePopulationCSV writes tidy population records.
func WritePopulationCSV(path string, records []model.PopulationRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Geo, strconv.Itoa(r.Year), fmtFloat(r.Population)})
	}
	return writeCSV(path, popColumns, rows)
}

// ReadPopulationCSV reads tidy population records.
func ReadPopulationCSV(path string) ([]model.PopulationRecord, error) {
	rows, err := readCSV(path, popColumns)
	if err != nil {
		return nil, err
	}
	records := make([]model.PopulationRecord, 0, len(rows))
	for i, row := range rows {
		year, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, eris.Wrapf(err, "tidy: %s row %d: year", path, i+2)
		}
		pop, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, eris.Wrapf(err, "tidy: %s row %d: population", path, i+2)
		}
		records = append(records, model.PopulationRecord{Geo: row[0], Year: year, Population: pop})
	}
	return records, nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "tidy: create dir for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "tidy: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrapf(err, "tidy: write header %s", path)
	}
	if err := w.WriteAll(rows); err != nil {
		return eris.Wrapf(err, "tidy: write %s", path)
	}
	return eris.Wrapf(f.Close(), "tidy: close %s", path)
}

func readCSV(path string, want []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tidy: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "tidy: read header %s", path)
	}
	if len(header) != len(want) {
		return nil, eris.Errorf("tidy: %s: expected %d columns, got %d", path, len(want), len(header))
	}
	for i, col := range want {
		if header[i] != col {
			return nil, eris.Errorf("tidy: %s: expected column %q at position %d, got %q", path, col, i, header[i])
		}
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "tidy: read %s", path)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
