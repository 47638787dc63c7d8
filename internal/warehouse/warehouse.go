package warehouse

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/climate-health-cli/internal/model"
)

// Supported warehouse drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and addresses the warehouse backend. For sqlite the DSN is
// a file path; for postgres a connection string.
type Config struct {
	Driver string
	DSN    string
}

// LoadMeta identifies one load run for the audit trail.
type LoadMeta struct {
	RunID     string
	NUTS2Only bool
	StartedAt time.Time
}

// LoadStats reports rows written per table by one load.
type LoadStats struct {
	TableCounts map[string]int
	Duration    time.Duration
}

// IntegrityReport is the post-load verification summary.
type IntegrityReport struct {
	TableCounts map[string]int
	NUTSLevels  map[int]int
	MinYear     int
	MaxYear     int

	OrphanEmissions  int
	OrphanCauses     int
	OrphanDischarges int
	OrphanPopulation int
}

// Orphans returns the total count of fact rows with dangling dimension keys.
func (r *IntegrityReport) Orphans() int {
	return r.OrphanEmissions + r.OrphanCauses + r.OrphanDischarges + r.OrphanPopulation
}

// Warehouse is a star-schema backend. Load fully replaces prior contents:
// delete-then-insert for every table inside one transaction.
type Warehouse interface {
	Migrate(ctx context.Context) error
	Load(ctx context.Context, star *model.Star, meta LoadMeta) (*LoadStats, error)
	Verify(ctx context.Context) (*IntegrityReport, error)
	Close() error
}

// New opens the warehouse selected by cfg.
func New(ctx context.Context, cfg Config) (Warehouse, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return OpenSQLite(cfg.DSN)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, eris.Errorf("warehouse: unknown driver %q", cfg.Driver)
	}
}

// Table names in load order: dimensions before facts. Deletes run in
// reverse so foreign keys never dangle mid-transaction.
var tableOrder = []string{
	"dim_geography",
	"dim_time",
	"dim_sector",
	"dim_gas",
	"dim_icd10_cod",
	"dim_discharge_type",
	"fact_emissions",
	"fact_causes_of_death",
	"fact_hospital_discharges",
	"fact_population",
}

func tableCounts(star *model.Star) map[string]int {
	return map[string]int{
		"dim_geography":            len(star.Geography),
		"dim_time":                 len(star.Time),
		"dim_sector":               len(star.Sectors),
		"dim_gas":                  len(star.Gases),
		"dim_icd10_cod":            len(star.Causes),
		"dim_discharge_type":       len(star.DischargeTypes),
		"fact_emissions":           len(star.Emissions),
		"fact_causes_of_death":     len(star.CausesOfDeath),
		"fact_hospital_discharges": len(star.Discharges),
		"fact_population":          len(star.Population),
	}
}
