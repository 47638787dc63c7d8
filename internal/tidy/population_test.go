package tidy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulation_FiltersToAnnualTotals(t *testing.T) {
	path := writeTempTSV(t,
		"freq,unit,sex,age,geo\\TIME_PERIOD\t2019 \t2020 \n"+
			"A,NR,T,TOTAL,FR10\t12000000\t12100000\n"+
			"A,NR,M,TOTAL,FR10\t5900000\t5950000\n"+
			"A,NR,T,Y15-64,FR10\t8000000\t8050000\n"+
			"Q,NR,T,TOTAL,FR10\t12000000\t12100000\n")

	records, rep, err := Population(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "FR10", records[0].Geo)
	assert.Equal(t, 2019, records[0].Year)
	assert.Equal(t, 12000000.0, records[0].Population)
	assert.Equal(t, 2020, records[1].Year)

	assert.Equal(t, 6, rep.Dropped["out_of_scope"])
	assert.Equal(t, 2, rep.RowsOut)
}

func TestPopulation_DropsNonPositive(t *testing.T) {
	path := writeTempTSV(t,
		"freq,unit,sex,age,geo\\TIME_PERIOD\t2020 \n"+
			"A,NR,T,TOTAL,FR10\t0\n"+
			"A,NR,T,TOTAL,DE21\t-5\n"+
			"A,NR,T,TOTAL,IT24\t4000000\n")

	records, rep, err := Population(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "IT24", records[0].Geo)
	assert.Equal(t, 2, rep.Dropped["non_positive_population"])
	assert.Equal(t, 1, rep.RowsOut)
}
