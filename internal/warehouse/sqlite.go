package warehouse

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/climate-health-cli/internal/model"
)

// SQLiteWarehouse implements Warehouse using modernc.org/sqlite.
type SQLiteWarehouse struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite warehouse at the given path and configures WAL
// mode. Transactions start immediate so concurrent loaders serialize at
// BEGIN instead of failing mid-write.
func OpenSQLite(path string) (*SQLiteWarehouse, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_txlock=immediate")
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteWarehouse{db: db}, nil
}

func (w *SQLiteWarehouse) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := w.db.ExecContext(ctx, stmt); err != nil {
			return eris.Wrap(err, "sqlite: migrate")
		}
	}
	return nil
}

func (w *SQLiteWarehouse) Close() error {
	return w.db.Close()
}

// Load replaces the warehouse contents with the given star in one
// transaction: delete facts then dims, insert dims then facts, back-fill
// the time availability flags, and record the run.
func (w *SQLiteWarehouse) Load(ctx context.Context, star *model.Star, meta LoadMeta) (*LoadStats, error) {
	start := time.Now()

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback()

	for i := len(tableOrder) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+tableOrder[i]); err != nil {
			return nil, eris.Wrapf(err, "sqlite: clear %s", tableOrder[i])
		}
	}

	for _, table := range starTables(star) {
		stmt, err := tx.PrepareContext(ctx, table.insertSQL())
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: prepare %s", table.name)
		}
		for _, args := range table.rows {
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				stmt.Close()
				return nil, eris.Wrapf(err, "sqlite: insert %s", table.name)
			}
		}
		stmt.Close()
	}

	for _, stmt := range availabilityUpdates {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, eris.Wrap(err, "sqlite: update availability flags")
		}
	}

	counts := tableCounts(star)
	runArgs, err := runRowArgs(meta, start, counts)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO etl_runs (run_id, started_at, finished_at, status, nuts2_only, table_counts)
		 VALUES (?, ?, ?, ?, ?, ?)`, runArgs...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit")
	}
	return &LoadStats{TableCounts: counts, Duration: time.Since(start)}, nil
}

func (w *SQLiteWarehouse) Verify(ctx context.Context) (*IntegrityReport, error) {
	rep := &IntegrityReport{
		TableCounts: make(map[string]int),
		NUTSLevels:  make(map[int]int),
	}

	for _, table := range tableOrder {
		var n int
		if err := w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "sqlite: count %s", table)
		}
		rep.TableCounts[table] = n
	}

	rows, err := w.db.QueryContext(ctx,
		"SELECT nuts_level, COUNT(*) FROM dim_geography GROUP BY nuts_level ORDER BY nuts_level")
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: nuts level distribution")
	}
	defer rows.Close()
	for rows.Next() {
		var level, n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan nuts level")
		}
		rep.NUTSLevels[level] = n
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: nuts level iterate")
	}

	var minYear, maxYear sql.NullInt64
	if err := w.db.QueryRowContext(ctx, "SELECT MIN(year), MAX(year) FROM dim_time").Scan(&minYear, &maxYear); err != nil {
		return nil, eris.Wrap(err, "sqlite: year range")
	}
	rep.MinYear = int(minYear.Int64)
	rep.MaxYear = int(maxYear.Int64)

	for _, oq := range orphanQueries {
		var n int
		if err := w.db.QueryRowContext(ctx, oq.query).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "sqlite: orphans %s", oq.table)
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
