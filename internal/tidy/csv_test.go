package tidy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/climate-health-cli/internal/model"
)

func TestEmissionsCSV_RoundTrip(t *testing.T) {
	records := []model.EmissionRecord{
		{
			NUTSID: "FR10", NUTSLabel: "Ile-de-France", CountryISO: "FR", CountryName: "France",
			Year: 2020, Gas: "CO2", Sector: "Energy", SectorGroup: "energy", EmissionsKt: 12.5,
		},
		{
			NUTSID: "DE21", NUTSLabel: "Oberbayern", CountryISO: "DE", CountryName: "Germany",
			Year: 2019, Gas: "CH4", Sector: "Dom_Avi", SectorGroup: "transport", EmissionsKt: 0.125,
		},
	}

	path := filepath.Join(t.TempDir(), "processed", "emissions.csv")
	require.NoError(t, WriteEmissionsCSV(path, records))

	got, err := ReadEmissionsCSV(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadEmissionsCSV_HeaderMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("geo,year,population\nFR10,2020,100\n"), 0o644))

	_, err := ReadEmissionsCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected")
}

func TestPopulationCSV_RoundTrip(t *testing.T) {
	records := []model.PopulationRecord{
		{Geo: "FR10", Year: 2020, Population: 12278210},
	}

	path := filepath.Join(t.TempDir(), "population.csv")
	require.NoError(t, WritePopulationCSV(path, records))

	got, err := ReadPopulationCSV(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadCausesCSV_BadYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "causes.csv")
	content := "geo,year,frequency,unit_code,sex,age_group,icd10_group,age_standardised_rate_per_100k\n" +
		"FR10,notayear,A,RT,T,TOTAL,J,42.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadCausesCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year")
}

func TestReadDischargesCSV_MissingFile(t *testing.T) {
	_, err := ReadDischargesCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
