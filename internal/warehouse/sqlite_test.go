package warehouse

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/climate-health-cli/internal/model"
)

func openTestSQLite(t *testing.T) *SQLiteWarehouse {
	t.Helper()
	w, err := OpenSQLite(filepath.Join(t.TempDir(), "warehouse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	require.NoError(t, w.Migrate(context.Background()))
	return w
}

func testStar(t *testing.T) *model.Star {
	t.Helper()
	causes := []model.CauseRecord{
		{Geo: "FR10", Year: 2020, Frequency: "A", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "J45_J46", Rate: 3.5},
	}
	discharges := []model.DischargeRecord{
		{Geo: "FR10", Year: 2020, Frequency: "A", Sex: "T", AgeGroup: "TOTAL", ICD10Group: "J12-J18", Discharges: 500},
	}
	population := []model.PopulationRecord{
		{Geo: "FR10", Year: 2020, Population: 250000},
		{Geo: "DE21", Year: 2019, Population: 4600000},
	}
	star, rep := BuildStar(testEmissions(), causes, discharges, population, BuildOptions{})
	require.Zero(t, rep.EmissionsDropped)
	return star
}

func TestSQLiteWarehouse_LoadAndVerify(t *testing.T) {
	w := openTestSQLite(t)
	ctx := context.Background()

	stats, err := w.Load(ctx, testStar(t), LoadMeta{RunID: "run-1"})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TableCounts["fact_emissions"])
	assert.Equal(t, 2, stats.TableCounts["dim_geography"])

	rep, err := w.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.TableCounts["fact_emissions"])
	assert.Equal(t, 1, rep.TableCounts["fact_causes_of_death"])
	assert.Equal(t, 1, rep.TableCounts["fact_hospital_discharges"])
	assert.Equal(t, 2, rep.TableCounts["fact_population"])
	assert.Equal(t, map[int]int{2: 2}, rep.NUTSLevels)
	assert.Equal(t, 2019, rep.MinYear)
	assert.Equal(t, 2020, rep.MaxYear)
	assert.Zero(t, rep.Orphans())
}

func TestSQLiteWarehouse_AvailabilityFlags(t *testing.T) {
	w := openTestSQLite(t)
	ctx := context.Background()

	_, err := w.Load(ctx, testStar(t), LoadMeta{RunID: "run-1"})
	require.NoError(t, err)

	rows, err := w.db.QueryContext(ctx,
		"SELECT year, is_emissions_available, is_health_available, is_population_available FROM dim_time ORDER BY year")
	require.NoError(t, err)
	defer rows.Close()

	flags := make(map[int][3]bool)
	for rows.Next() {
		var year int
		var em, he, po bool
		require.NoError(t, rows.Scan(&year, &em, &he, &po))
		flags[year] = [3]bool{em, he, po}
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, [3]bool{true, false, true}, flags[2019])
	assert.Equal(t, [3]bool{true, true, true}, flags[2020])
}

func TestSQLiteWarehouse_ReloadReplaces(t *testing.T) {
	w := openTestSQLite(t)
	ctx := context.Background()

	_, err := w.Load(ctx, testStar(t), LoadMeta{RunID: "run-1"})
	require.NoError(t, err)
	_, err = w.Load(ctx, testStar(t), LoadMeta{RunID: "run-2"})
	require.NoError(t, err)

	rep, err := w.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.TableCounts["fact_emissions"])
	assert.Equal(t, 2, rep.TableCounts["dim_geography"])

	var runs int
	require.NoError(t, w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM etl_runs").Scan(&runs))
	assert.Equal(t, 2, runs)
}

func TestSQLiteWarehouse_DischargeRateStored(t *testing.T) {
	w := openTestSQLite(t)
	ctx := context.Background()

	_, err := w.Load(ctx, testStar(t), LoadMeta{RunID: "run-1"})
	require.NoError(t, err)

	var rate float64
	require.NoError(t, w.db.QueryRowContext(ctx,
		"SELECT discharge_rate_per_100k FROM fact_hospital_discharges").Scan(&rate))
	assert.Equal(t, 200.0, rate)
}

func TestSQLiteWarehouse_MigrateIdempotent(t *testing.T) {
	w := openTestSQLite(t)
	require.NoError(t, w.Migrate(context.Background()))
}
