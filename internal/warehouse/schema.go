package warehouse

// schemaStatements is the star schema DDL, written in the SQL subset both
// backends accept. Surrogate keys are assigned in memory, so dimension
// primary keys are plain BIGINT columns, not sequences.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS dim_geography (
		geography_id BIGINT PRIMARY KEY,
		nuts_id      TEXT NOT NULL UNIQUE,
		nuts_label   TEXT NOT NULL,
		nuts_level   INTEGER NOT NULL,
		country_iso  TEXT NOT NULL,
		country_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dim_time (
		time_id                 BIGINT PRIMARY KEY,
		year                    INTEGER NOT NULL UNIQUE,
		decade                  INTEGER NOT NULL,
		year_label              TEXT NOT NULL,
		is_leap_year            BOOLEAN NOT NULL,
		quarter                 INTEGER NOT NULL,
		is_emissions_available  BOOLEAN NOT NULL,
		is_health_available     BOOLEAN NOT NULL,
		is_population_available BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dim_sector (
		sector_id          BIGINT PRIMARY KEY,
		sector_code        TEXT NOT NULL UNIQUE,
		sector_name        TEXT NOT NULL,
		sector_group       TEXT NOT NULL,
		sector_description TEXT,
		is_active          BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dim_gas (
		gas_id      BIGINT PRIMARY KEY,
		gas_code    TEXT NOT NULL UNIQUE,
		gas_name    TEXT NOT NULL,
		gas_formula TEXT,
		gwp_ar5     DOUBLE PRECISION,
		is_active   BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dim_icd10_cod (
		icd10_cod_id      BIGINT PRIMARY KEY,
		icd10_code        TEXT NOT NULL UNIQUE,
		icd10_name        TEXT NOT NULL,
		icd10_category    TEXT,
		icd10_description TEXT NOT NULL,
		is_respiratory    BOOLEAN NOT NULL,
		is_active         BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dim_discharge_type (
		discharge_type_id     BIGINT PRIMARY KEY,
		discharge_code        TEXT NOT NULL UNIQUE,
		discharge_name        TEXT NOT NULL,
		discharge_category    TEXT,
		icd10_codes           TEXT NOT NULL,
		discharge_description TEXT NOT NULL,
		is_respiratory        BOOLEAN NOT NULL,
		is_active             BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS fact_emissions (
		geography_id      BIGINT NOT NULL REFERENCES dim_geography(geography_id),
		time_id           BIGINT NOT NULL REFERENCES dim_time(time_id),
		sector_id         BIGINT NOT NULL REFERENCES dim_sector(sector_id),
		gas_id            BIGINT NOT NULL REFERENCES dim_gas(gas_id),
		emissions_kt_co2e DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (geography_id, time_id, sector_id, gas_id)
	)`,
	`CREATE TABLE IF NOT EXISTS fact_causes_of_death (
		geography_id                   BIGINT NOT NULL REFERENCES dim_geography(geography_id),
		time_id                        BIGINT NOT NULL REFERENCES dim_time(time_id),
		icd10_cod_id                   BIGINT NOT NULL REFERENCES dim_icd10_cod(icd10_cod_id),
		age_standardised_rate_per_100k DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (geography_id, time_id, icd10_cod_id)
	)`,
	`CREATE TABLE IF NOT EXISTS fact_hospital_discharges (
		geography_id            BIGINT NOT NULL REFERENCES dim_geography(geography_id),
		time_id                 BIGINT NOT NULL REFERENCES dim_time(time_id),
		discharge_type_id       BIGINT NOT NULL REFERENCES dim_discharge_type(discharge_type_id),
		discharge_count         DOUBLE PRECISION NOT NULL,
		discharge_rate_per_100k DOUBLE PRECISION,
		PRIMARY KEY (geography_id, time_id, discharge_type_id)
	)`,
	`CREATE TABLE IF NOT EXISTS fact_population (
		geography_id BIGINT NOT NULL REFERENCES dim_geography(geography_id),
		time_id      BIGINT NOT NULL REFERENCES dim_time(time_id),
		population   DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (geography_id, time_id)
	)`,
	`CREATE TABLE IF NOT EXISTS etl_runs (
		run_id       TEXT PRIMARY KEY,
		started_at   TEXT NOT NULL,
		finished_at  TEXT NOT NULL,
		status       TEXT NOT NULL,
		nuts2_only   BOOLEAN NOT NULL,
		table_counts TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fact_emissions_time ON fact_emissions(time_id)`,
	`CREATE INDEX IF NOT EXISTS idx_fact_causes_time ON fact_causes_of_death(time_id)`,
	`CREATE INDEX IF NOT EXISTS idx_fact_discharges_time ON fact_hospital_discharges(time_id)`,
	`CREATE INDEX IF NOT EXISTS idx_fact_population_time ON fact_population(time_id)`,
}

// availabilityUpdates back-fill the dim_time flags from the loaded facts.
// They run inside the load transaction, after every fact insert.
var availabilityUpdates = []string{
	`UPDATE dim_time SET is_emissions_available = TRUE
		WHERE time_id IN (SELECT DISTINCT time_id FROM fact_emissions)`,
	`UPDATE dim_time SET is_health_available = TRUE
		WHERE time_id IN (SELECT DISTINCT time_id FROM fact_causes_of_death)`,
	`UPDATE dim_time SET is_population_available = TRUE
		WHERE time_id IN (SELECT DISTINCT time_id FROM fact_population)`,
}

// orphanQueries count fact rows whose dimension keys resolve to nothing.
// All should return zero: the star build drops unresolvable rows.
var orphanQueries = []struct {
	table string
	query string
}{
	{"fact_emissions", `SELECT COUNT(*) FROM fact_emissions f
		LEFT JOIN dim_geography g ON f.geography_id = g.geography_id
		LEFT JOIN dim_time t ON f.time_id = t.time_id
		LEFT JOIN dim_sector s ON f.sector_id = s.sector_id
		LEFT JOIN dim_gas ga ON f.gas_id = ga.gas_id
		WHERE g.geography_id IS NULL OR t.time_id IS NULL OR s.sector_id IS NULL OR ga.gas_id IS NULL`},
	{"fact_causes_of_death", `SELECT COUNT(*) FROM fact_causes_of_death f
		LEFT JOIN dim_geography g ON f.geography_id = g.geography_id
		LEFT JOIN dim_time t ON f.time_id = t.time_id
		LEFT JOIN dim_icd10_cod c ON f.icd10_cod_id = c.icd10_cod_id
		WHERE g.geography_id IS NULL OR t.time_id IS NULL OR c.icd10_cod_id IS NULL`},
	{"fact_hospital_discharges", `SELECT COUNT(*) FROM fact_hospital_discharges f
		LEFT JOIN dim_geography g ON f.geography_id = g.geography_id
		LEFT JOIN dim_time t ON f.time_id = t.time_id
		LEFT JOIN dim_discharge_type d ON f.discharge_type_id = d.discharge_type_id
		WHERE g.geography_id IS NULL OR t.time_id IS NULL OR d.discharge_type_id IS NULL`},
	{"fact_population", `SELECT COUNT(*) FROM fact_population f
		LEFT JOIN dim_geography g ON f.geography_id = g.geography_id
		LEFT JOIN dim_time t ON f.time_id = t.time_id
		WHERE g.geography_id IS NULL OR t.time_id IS NULL`},
}
