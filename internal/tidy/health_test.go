package tidy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCausesOfDeath(t *testing.T) {
	path := writeTempTSV(t,
		"freq,unit,sex,age,icd10,geo\\TIME_PERIOD\t2019 \n"+
			"A,RT,T,TOTAL,J45_J46,DE21\t3.5\n"+
			"A,RT,F,TOTAL,J,DE21\t40.1\n")

	records, rep, err := CausesOfDeath(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "DE21", records[0].Geo)
	assert.Equal(t, 2019, records[0].Year)
	assert.Equal(t, "A", records[0].Frequency)
	assert.Equal(t, "RT", records[0].UnitCode)
	assert.Equal(t, "T", records[0].Sex)
	assert.Equal(t, "TOTAL", records[0].AgeGroup)
	assert.Equal(t, "J45_J46", records[0].ICD10Group)
	assert.Equal(t, 3.5, records[0].Rate)

	assert.Equal(t, "F", records[1].Sex)
	assert.Equal(t, 2, rep.RowsOut)
}

func TestHospitalDischarges(t *testing.T) {
	path := writeTempTSV(t,
		"freq,indic_he,unit,sex,age,icd10,geo\\TIME_PERIOD\t2020 \n"+
			"A,INPAT,NR,T,TOTAL,J12-J18,FR10\t1250\n")

	records, rep, err := HospitalDischarges(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "FR10", records[0].Geo)
	assert.Equal(t, 2020, records[0].Year)
	assert.Equal(t, "INPAT", records[0].Indicator)
	assert.Equal(t, "J12-J18", records[0].ICD10Group)
	assert.Equal(t, 1250.0, records[0].Discharges)
	assert.Equal(t, 1, rep.RowsOut)
}
