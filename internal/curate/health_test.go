package curate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/climate-health-cli/internal/model"
)

func TestPivotCauses_AllowListAndFilter(t *testing.T) {
	records := []model.CauseRecord{
		{Geo: "DE21", Year: 2019, Frequency: "A", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "J45_J46", Rate: 3.5},
		{Geo: "DE21", Year: 2019, Frequency: "A", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "J", Rate: 41.2},
		// out of scope rows
		{Geo: "DE21", Year: 2019, Frequency: "A", Sex: "F", AgeGroup: "TOTAL", ICD10Group: "J45_J46", Rate: 99},
		{Geo: "DE21", Year: 2019, Frequency: "A", Sex: "T", AgeGroup: "Y15-64", ICD10Group: "J45_J46", Rate: 99},
		// not in the allow-list
		{Geo: "DE21", Year: 2019, Frequency: "A", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "C34", Rate: 99},
	}

	wide := PivotCauses(records)
	require.Len(t, wide, 1)

	metrics := wide[model.RegionYear{NUTSID: "DE21", Year: 2019}]
	require.Len(t, metrics, 2)
	assert.Equal(t, 3.5, metrics["cod_asthma_rate"])
	assert.Equal(t, 41.2, metrics["cod_all_resp_rate"])
}

func TestPivotCauses_DuplicatesAverage(t *testing.T) {
	records := []model.CauseRecord{
		{Geo: "FR10", Year: 2020, Frequency: "A", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "J", Rate: 40},
		{Geo: "FR10", Year: 2020, Frequency: "A", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "J", Rate: 44},
	}

	wide := PivotCauses(records)
	metrics := wide[model.RegionYear{NUTSID: "FR10", Year: 2020}]
	assert.Equal(t, 42.0, metrics["cod_all_resp_rate"])
}

func TestPivotDischarges(t *testing.T) {
	records := []model.DischargeRecord{
		{Geo: "FR10", Year: 2020, Frequency: "A", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "J12-J18", Discharges: 500},
		{Geo: "FR10", Year: 2020, Frequency: "A", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "J60-J99", Discharges: 120},
		{Geo: "FR10", Year: 2020, Frequency: "Q", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "J12-J18", Discharges: 99},
	}

	wide := PivotDischarges(records)
	metrics := wide[model.RegionYear{NUTSID: "FR10", Year: 2020}]
	require.Len(t, metrics, 2)
	assert.Equal(t, 500.0, metrics["discharge_pneumonia"])
	assert.Equal(t, 120.0, metrics["discharge_other_resp"])
}
