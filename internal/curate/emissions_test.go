package curate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/climate-health-cli/internal/model"
)

func TestAggregateEmissions_SumsAcrossSheetsAndSectors(t *testing.T) {
	records := []model.EmissionRecord{
		{NUTSID: "FR10", NUTSLabel: "Ile-de-France", CountryISO: "FR", CountryName: "France",
			Year: 2020, Gas: "CO2", Sector: "Energy", SectorGroup: "energy", EmissionsKt: 10},
		{NUTSID: "FR10", NUTSLabel: "Ile-de-France", CountryISO: "FR", CountryName: "France",
			Year: 2020, Gas: "CO2", Sector: "Transport", SectorGroup: "transport", EmissionsKt: 5},
		{NUTSID: "FR10", NUTSLabel: "Ile-de-France", CountryISO: "FR", CountryName: "France",
			Year: 2020, Gas: "CH4", Sector: "Energy", SectorGroup: "energy", EmissionsKt: 2},
	}

	aggs := AggregateEmissions(records)
	require.Len(t, aggs, 1)

	agg := aggs[0]
	assert.Equal(t, "FR10", agg.NUTSID)
	assert.Equal(t, 2020, agg.Year)
	assert.InDelta(t, 17.0, agg.TotalKt, 1e-6)
	assert.InDelta(t, 12.0, agg.SectorKt["energy"], 1e-6)
	assert.InDelta(t, 5.0, agg.SectorKt["transport"], 1e-6)
}

func TestAggregateEmissions_SortedAndFirstLabelWins(t *testing.T) {
	records := []model.EmissionRecord{
		{NUTSID: "IT24", Year: 2019, NUTSLabel: "Veneto", SectorGroup: "other", EmissionsKt: 1},
		{NUTSID: "DE21", Year: 2020, NUTSLabel: "Oberbayern", SectorGroup: "other", EmissionsKt: 1},
		{NUTSID: "DE21", Year: 2019, NUTSLabel: "Oberbayern", SectorGroup: "other", EmissionsKt: 1},
		{NUTSID: "DE21", Year: 2019, NUTSLabel: "renamed later", SectorGroup: "other", EmissionsKt: 1},
	}

	aggs := AggregateEmissions(records)
	require.Len(t, aggs, 3)
	assert.Equal(t, model.RegionYear{NUTSID: "DE21", Year: 2019}, model.RegionYear{NUTSID: aggs[0].NUTSID, Year: aggs[0].Year})
	assert.Equal(t, 2020, aggs[1].Year)
	assert.Equal(t, "IT24", aggs[2].NUTSID)

	assert.Equal(t, "Oberbayern", aggs[0].NUTSLabel)
	assert.InDelta(t, 2.0, aggs[0].TotalKt, 1e-6)
}

func TestSectorColumns_SortedUnion(t *testing.T) {
	aggs := []EmissionsAgg{
		{SectorKt: map[string]float64{"transport": 1, "energy": 2}},
		{SectorKt: map[string]float64{"energy": 3, "waste": 4}},
	}
	assert.Equal(t, []string{"energy", "transport", "waste"}, SectorColumns(aggs))
}
