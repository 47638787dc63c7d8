package warehouse

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/climate-health-cli/internal/model"
)

// tableData is one table's rows in insert-ready positional form, shared by
// both backends: SQLite builds INSERT statements from it, Postgres feeds it
// to COPY.
type tableData struct {
	name    string
	columns []string
	rows    [][]any
}

// starTables flattens the star bundle in load order: dimensions first.
func starTables(star *model.Star) []tableData {
	geography := tableData{
		name:    "dim_geography",
		columns: []string{"geography_id", "nuts_id", "nuts_label", "nuts_level", "country_iso", "country_name"},
	}
	for _, d := range star.Geography {
		geography.rows = append(geography.rows, []any{d.ID, d.NUTSID, d.NUTSLabel, d.NUTSLevel, d.CountryISO, d.CountryName})
	}

	times := tableData{
		name: "dim_time",
		columns: []string{"time_id", "year", "decade", "year_label", "is_leap_year", "quarter",
			"is_emissions_available", "is_health_available", "is_population_available"},
	}
	for _, d := range star.Time {
		times.rows = append(times.rows, []any{d.ID, d.Year, d.Decade, d.YearLabel, d.IsLeapYear, d.Quarter,
			d.EmissionsAvailable, d.HealthAvailable, d.PopulationAvailable})
	}

	sectors := tableData{
		name:    "dim_sector",
		columns: []string{"sector_id", "sector_code", "sector_name", "sector_group", "sector_description", "is_active"},
	}
	for _, d := range star.Sectors {
		sectors.rows = append(sectors.rows, []any{d.ID, d.Code, d.Name, d.Group, d.Description, d.IsActive})
	}

	gases := tableData{
		name:    "dim_gas",
		columns: []string{"gas_id", "gas_code", "gas_name", "gas_formula", "gwp_ar5", "is_active"},
	}
	for _, d := range star.Gases {
		gases.rows = append(gases.rows, []any{d.ID, d.Code, d.Name, d.Formula, d.GWPAR5, d.IsActive})
	}

	causes := tableData{
		name:    "dim_icd10_cod",
		columns: []string{"icd10_cod_id", "icd10_code", "icd10_name", "icd10_category", "icd10_description", "is_respiratory", "is_active"},
	}
	for _, d := range star.Causes {
		causes.rows = append(causes.rows, []any{d.ID, d.Code, d.Name, d.Category, d.Description, d.IsRespiratory, d.IsActive})
	}

	dischargeTypes := tableData{
		name: "dim_discharge_type",
		columns: []string{"discharge_type_id", "discharge_code", "discharge_name", "discharge_category",
			"icd10_codes", "discharge_description", "is_respiratory", "is_active"},
	}
	for _, d := range star.DischargeTypes {
		dischargeTypes.rows = append(dischargeTypes.rows, []any{d.ID, d.Code, d.Name, d.Category,
			d.ICD10Codes, d.Description, d.IsRespiratory, d.IsActive})
	}

	emissions := tableData{
		name:    "fact_emissions",
		columns: []string{"geography_id", "time_id", "sector_id", "gas_id", "emissions_kt_co2e"},
	}
	for _, f := range star.Emissions {
		emissions.rows = append(emissions.rows, []any{f.GeographyID, f.TimeID, f.SectorID, f.GasID, f.EmissionsKt})
	}

	causeFacts := tableData{
		name:    "fact_causes_of_death",
		columns: []string{"geography_id", "time_id", "icd10_cod_id", "age_standardised_rate_per_100k"},
	}
	for _, f := range star.CausesOfDeath {
		causeFacts.rows = append(causeFacts.rows, []any{f.GeographyID, f.TimeID, f.CauseID, f.Rate})
	}

	dischargeFacts := tableData{
		name:    "fact_hospital_discharges",
		columns: []string{"geography_id", "time_id", "discharge_type_id", "discharge_count", "discharge_rate_per_100k"},
	}
	for _, f := range star.Discharges {
		dischargeFacts.rows = append(dischargeFacts.rows, []any{f.GeographyID, f.TimeID, f.DischargeTypeID, f.Count, f.RatePer100k})
	}

	populationFacts := tableData{
		name:    "fact_population",
		columns: []string{"geography_id", "time_id", "population"},
	}
	for _, f := range star.Population {
		populationFacts.rows = append(populationFacts.rows, []any{f.GeographyID, f.TimeID, f.Population})
	}

	return []tableData{
		geography, times, sectors, gases, causes, dischargeTypes,
		emissions, causeFacts, dischargeFacts, populationFacts,
	}
}

func (t tableData) insertSQL() string {
	marks := make([]string, len(t.columns))
	for i := range marks {
		marks[i] = "?"
	}
	return "INSERT INTO " + t.name + " (" + strings.Join(t.columns, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
}

// runRowArgs builds the etl_runs row for one load.
func runRowArgs(meta LoadMeta, start time.Time, counts map[string]int) ([]any, error) {
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return nil, eris.Wrap(err, "warehouse: marshal table counts")
	}
	startedAt := meta.StartedAt
	if startedAt.IsZero() {
		startedAt = start
	}
	return []any{
		meta.RunID,
		startedAt.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		"complete",
		meta.NUTS2Only,
		string(countsJSON),
	}, nil
}
