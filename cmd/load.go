package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/climate-health-cli/internal/tidy"
	"github.com/sells-group/climate-health-cli/internal/warehouse"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Build the star schema and replace-load the warehouse",
	Long: `Reads the four tidy CSVs, resolves them into a star schema in memory,
and loads it into SQLite or Postgres inside one transaction. Each load fully
replaces the prior warehouse contents and records an audit row.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "load"))

		emissionsCSV := flagOrDefault(cmd, "emissions", cfg.Paths.EmissionsTidy)
		causesCSV := flagOrDefault(cmd, "causes", cfg.Paths.CausesTidy)
		dischargesCSV := flagOrDefault(cmd, "discharges", cfg.Paths.DischargesTidy)
		populationCSV := flagOrDefault(cmd, "population", cfg.Paths.PopulationTidy)
		driver := flagOrDefault(cmd, "driver", cfg.Warehouse.Driver)
		dsn := flagOrDefault(cmd, "db", cfg.Warehouse.DSN)
		nuts2Only, _ := cmd.Flags().GetBool("nuts2-only")

		// Every input is checked before anything is written, so a partial
		// file set reports all gaps at once instead of one per run.
		inputs := []string{emissionsCSV, causesCSV, dischargesCSV, populationCSV}
		var missing []string
		for _, path := range inputs {
			if _, err := os.Stat(path); err != nil {
				missing = append(missing, path)
			}
		}
		if len(missing) > 0 {
			return eris.Errorf("load: missing inputs: %s", strings.Join(missing, ", "))
		}

		emissions, err := tidy.ReadEmissionsCSV(emissionsCSV)
		if err != nil {
			return err
		}
		causes, err := tidy.ReadCausesCSV(causesCSV)
		if err != nil {
			return err
		}
		discharges, err := tidy.ReadDischargesCSV(dischargesCSV)
		if err != nil {
			return err
		}
		population, err := tidy.ReadPopulationCSV(populationCSV)
		if err != nil {
			return err
		}

		star, rep := warehouse.BuildStar(emissions, causes, discharges, population, warehouse.BuildOptions{
			NUTS2Only: nuts2Only,
		})
		log.Info("star schema built",
			zap.Int("regions", len(star.Geography)),
			zap.Int("years", len(star.Time)),
			zap.Int("emission_facts", len(star.Emissions)),
			zap.Int("geography_dropped", rep.GeographyDropped),
			zap.Int("emissions_dropped", rep.EmissionsDropped),
			zap.Int("causes_dropped", rep.CausesDropped),
			zap.Int("discharges_dropped", rep.DischargesDropped),
			zap.Int("population_dropped", rep.PopulationDropped),
			zap.Int("emissions_deduped", rep.EmissionsDeduped),
			zap.Int("causes_deduped", rep.CausesDeduped),
			zap.Int("discharges_deduped", rep.DischargesDeduped),
			zap.Int("population_deduped", rep.PopulationDeduped),
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		wh, err := warehouse.New(ctx, warehouse.Config{Driver: driver, DSN: dsn})
		if err != nil {
			return err
		}
		defer wh.Close()

		if err := wh.Migrate(ctx); err != nil {
			return err
		}

		meta := warehouse.LoadMeta{
			RunID:     uuid.NewString(),
			NUTS2Only: nuts2Only,
			StartedAt: time.Now().UTC(),
		}
		stats, err := wh.Load(ctx, star, meta)
		if err != nil {
			return err
		}
		log.Info("warehouse loaded",
			zap.String("run_id", meta.RunID),
			zap.String("driver", driver),
			zap.Duration("duration", stats.Duration),
		)

		report, err := wh.Verify(ctx)
		if err != nil {
			return err
		}
		printIntegrity(report)

		fmt.Printf("Load %s complete in %s\n", meta.RunID, stats.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	loadCmd.Flags().String("emissions", "", "tidy emissions CSV path (default: from config)")
	loadCmd.Flags().String("causes", "", "tidy causes CSV path (default: from config)")
	loadCmd.Flags().String("discharges", "", "tidy discharges CSV path (default: from config)")
	loadCmd.Flags().String("population", "", "tidy population CSV path (default: from config)")
	loadCmd.Flags().String("driver", "", "warehouse driver: sqlite or postgres (default: from config)")
	loadCmd.Flags().String("db", "", "warehouse DSN (default: from config)")
	loadCmd.Flags().Bool("nuts2-only", false, "restrict the geography dimension to NUTS level 2")
	rootCmd.AddCommand(loadCmd)
}
