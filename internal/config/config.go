// Package config loads application configuration from an optional YAML file
// and the environment, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Sectors   SectorsConfig   `yaml:"sectors" mapstructure:"sectors"`
	Warehouse WarehouseConfig `yaml:"warehouse" mapstructure:"warehouse"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// PathsConfig locates the raw extracts and the pipeline's output files.
type PathsConfig struct {
	EmissionsWorkbook string `yaml:"emissions_workbook" mapstructure:"emissions_workbook"`
	CausesTSV         string `yaml:"causes_tsv" mapstructure:"causes_tsv"`
	DischargesTSV     string `yaml:"discharges_tsv" mapstructure:"discharges_tsv"`
	PopulationTSV     string `yaml:"population_tsv" mapstructure:"population_tsv"`

	EmissionsTidy  string `yaml:"emissions_tidy" mapstructure:"emissions_tidy"`
	CausesTidy     string `yaml:"causes_tidy" mapstructure:"causes_tidy"`
	DischargesTidy string `yaml:"discharges_tidy" mapstructure:"discharges_tidy"`
	PopulationTidy string `yaml:"population_tidy" mapstructure:"population_tidy"`

	Curated string `yaml:"curated" mapstructure:"curated"`
}

// SectorsConfig points at an optional sector-group override file.
type SectorsConfig struct {
	GroupsFile string `yaml:"groups_file" mapstructure:"groups_file"`
}

// WarehouseConfig selects the star schema backend.
type WarehouseConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CLIMHEALTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("paths.emissions_workbook", "data/raw/EDGAR_emissions_NUTS2.xlsx")
	v.SetDefault("paths.causes_tsv", "data/raw/hlth_cd_asdr2.tsv")
	v.SetDefault("paths.discharges_tsv", "data/raw/hlth_co_disch1t.tsv")
	v.SetDefault("paths.population_tsv", "data/raw/demo_r_pjangrp3.tsv")
	v.SetDefault("paths.emissions_tidy", "data/processed/emissions_nuts2.csv")
	v.SetDefault("paths.causes_tidy", "data/processed/health_causes_of_death.csv")
	v.SetDefault("paths.discharges_tidy", "data/processed/health_hospital_discharges.csv")
	v.SetDefault("paths.population_tidy", "data/processed/population_nuts2.csv")
	v.SetDefault("paths.curated", "data/curated/eu_climate_health.csv")
	v.SetDefault("warehouse.driver", "sqlite")
	v.SetDefault("warehouse.dsn", "data/warehouse/air_health_eu.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
