package curate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/climate-health-cli/internal/model"
)

func TestCuratedHeader(t *testing.T) {
	header := CuratedHeader([]string{"energy", "transport"})

	assert.Equal(t, []string{"nuts_id", "year", "nuts_label", "country_iso", "country_name", "total_emissions_kt"}, header[:6])
	assert.Equal(t, "emissions_energy_kt", header[6])
	assert.Equal(t, "emissions_transport_kt", header[7])
	assert.Equal(t, "population", header[8])
	assert.Equal(t, "emissions_per_capita_tonnes", header[9])
	assert.Contains(t, header, "cod_asthma_rate")
	assert.Contains(t, header, "discharge_copd")
	assert.Contains(t, header, "discharge_copd_per_100k")
	// identity + emissions + 5 rates + 7 counts + 7 derived rates
	assert.Len(t, header, 10+5+7+7)
}

func TestWriteCurated(t *testing.T) {
	rows := []model.CuratedRow{
		{
			NUTSID: "FR10", Year: 2020, NUTSLabel: "Ile-de-France", CountryISO: "FR", CountryName: "France",
			TotalEmissionsKt: 17,
			SectorKt:         map[string]float64{"energy": 12, "transport": 5},
			Population:       250000,
			PerCapitaTonnes:  0.068,
			CauseRates:       map[string]float64{"cod_asthma_rate": 3.5},
			DischargeCounts:  map[string]float64{"discharge_pneumonia": 500},
			DischargeRates:   map[string]float64{"discharge_pneumonia_per_100k": 200},
		},
	}

	path := filepath.Join(t.TempDir(), "curated", "eu_climate_health.csv")
	require.NoError(t, WriteCurated(path, rows, []string{"energy", "transport"}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header, record := records[0], records[1]
	byCol := make(map[string]string, len(header))
	for i, col := range header {
		byCol[col] = record[i]
	}

	assert.Equal(t, "FR10", byCol["nuts_id"])
	assert.Equal(t, "2020", byCol["year"])
	assert.Equal(t, "17", byCol["total_emissions_kt"])
	assert.Equal(t, "12", byCol["emissions_energy_kt"])
	assert.Equal(t, "5", byCol["emissions_transport_kt"])
	assert.Equal(t, "3.5", byCol["cod_asthma_rate"])
	assert.Equal(t, "500", byCol["discharge_pneumonia"])
	assert.Equal(t, "200", byCol["discharge_pneumonia_per_100k"])

	// metrics with no recorded value stay empty, not zero
	assert.Equal(t, "", byCol["cod_copd_rate"])
	assert.Equal(t, "", byCol["discharge_asthma"])
	assert.Equal(t, "", byCol["discharge_asthma_per_100k"])
}
