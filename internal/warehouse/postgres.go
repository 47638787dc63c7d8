package warehouse

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/climate-health-cli/internal/model"
)

// loadLockKey serializes concurrent loaders via pg_advisory_xact_lock.
const loadLockKey = 7203914

// Pool is the subset of pgxpool.Pool the warehouse needs. pgxmock
// implements it for tests.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresWarehouse implements Warehouse using pgxpool.
type PostgresWarehouse struct {
	pool Pool
}

// OpenPostgres creates a PostgresWarehouse with a connection pool.
func OpenPostgres(ctx context.Context, connString string) (*PostgresWarehouse, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresWarehouse{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresWarehouse {
	return &PostgresWarehouse{pool: pool}
}

func (w *PostgresWarehouse) Migrate(ctx context.Context) error {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin migrate")
	}
	defer tx.Rollback(ctx)

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return eris.Wrap(err, "postgres: migrate")
		}
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit migrate")
}

func (w *PostgresWarehouse) Close() error {
	w.pool.Close()
	return nil
}

// Load replaces the warehouse contents in one transaction. A transaction
// advisory lock serializes concurrent loaders; COPY moves the rows.
func (w *PostgresWarehouse) Load(ctx context.Context, star *model.Star, meta LoadMeta) (*LoadStats, error) {
	start := time.Now()

	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", loadLockKey); err != nil {
		return nil, eris.Wrap(err, "postgres: acquire load lock")
	}

	for i := len(tableOrder) - 1; i >= 0; i-- {
		if _, err := tx.Exec(ctx, "DELETE FROM "+tableOrder[i]); err != nil {
			return nil, eris.Wrapf(err, "postgres: clear %s", tableOrder[i])
		}
	}

	for _, table := range starTables(star) {
		if len(table.rows) == 0 {
			continue
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{table.name}, table.columns, pgx.CopyFromRows(table.rows))
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: COPY INTO %s", table.name)
		}
	}

	for _, stmt := range availabilityUpdates {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return nil, eris.Wrap(err, "postgres: update availability flags")
		}
	}

	counts := tableCounts(star)
	runArgs, err := runRowArgs(meta, start, counts)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO etl_runs (run_id, started_at, finished_at, status, nuts2_only, table_counts)
		 VALUES ($1, $2, $3, $4, $5, $6)`, runArgs...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, eris.Wrap(err, "postgres: commit")
	}
	return &LoadStats{TableCounts: counts, Duration: time.Since(start)}, nil
}

func (w *PostgresWarehouse) Verify(ctx context.Context) (*IntegrityReport, error) {
	rep := &IntegrityReport{
		TableCounts: make(map[string]int),
		NUTSLevels:  make(map[int]int),
	}

	for _, table := range tableOrder {
		var n int
		if err := w.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "postgres: count %s", table)
		}
		rep.TableCounts[table] = n
	}

	rows, err := w.pool.Query(ctx,
		"SELECT nuts_level, COUNT(*) FROM dim_geography GROUP BY nuts_level ORDER BY nuts_level")
	if err != nil {
		return nil, eris.Wrap(err, "postgres: nuts level distribution")
	}
	defer rows.Close()
	for rows.Next() {
		var level, n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan nuts level")
		}
		rep.NUTSLevels[level] = n
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: nuts level iterate")
	}

	var minYear, maxYear *int
	if err := w.pool.QueryRow(ctx, "SELECT MIN(year), MAX(year) FROM dim_time").Scan(&minYear, &maxYear); err != nil {
		return nil, eris.Wrap(err, "postgres: year range")
	}
	if minYear != nil {
		rep.MinYear = *minYear
	}
	if maxYear != nil {
		rep.MaxYear = *maxYear
	}

	for _, oq := range orphanQueries {
		var n int
		if err := w.pool.QueryRow(ctx, oq.query).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "postgres: orphans %s", oq.table)
		}
		switch oq.table {
		case "fact_emissions":
			rep.OrphanEmissions = n
		case "fact_causes_of_death":
			rep.OrphanCauses = n
		case "fact_hospital_discharges":
			rep.OrphanDischarges = n
		case "fact_population":
			rep.OrphanPopulation = n
		}
	}
	return rep, nil
}
