package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/raw/EDGAR_emissions_NUTS2.xlsx", cfg.Paths.EmissionsWorkbook)
	assert.Equal(t, "data/raw/hlth_cd_asdr2.tsv", cfg.Paths.CausesTSV)
	assert.Equal(t, "data/raw/hlth_co_disch1t.tsv", cfg.Paths.DischargesTSV)
	assert.Equal(t, "data/raw/demo_r_pjangrp3.tsv", cfg.Paths.PopulationTSV)
	assert.Equal(t, "data/processed/emissions_nuts2.csv", cfg.Paths.EmissionsTidy)
	assert.Equal(t, "data/curated/eu_climate_health.csv", cfg.Paths.Curated)
	assert.Equal(t, "sqlite", cfg.Warehouse.Driver)
	assert.Equal(t, "data/warehouse/air_health_eu.db", cfg.Warehouse.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Sectors.GroupsFile)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chTempDir(t)

	yaml := `
warehouse:
  driver: postgres
  dsn: postgres://localhost/climhealth
log:
  level: debug
  format: console
sectors:
  groups_file: conf/sector_groups.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Warehouse.Driver)
	assert.Equal(t, "postgres://localhost/climhealth", cfg.Warehouse.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "conf/sector_groups.yaml", cfg.Sectors.GroupsFile)
	// Defaults still apply for unset values
	assert.Equal(t, "data/curated/eu_climate_health.csv", cfg.Paths.Curated)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chTempDir(t)

	yaml := `
warehouse:
  driver: sqlite
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("CLIMHEALTH_WAREHOUSE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Warehouse.Driver)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
	require.Error(t, err)
}
