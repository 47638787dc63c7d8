package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/climate-health-cli/internal/curate"
	"github.com/sells-group/climate-health-cli/internal/tidy"
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Merge the tidy tables into the curated analytical CSV",
	Long: `Aggregates tidy emissions to (region, year), pivots the health tables
wide, joins population, derives per-capita and per-100k metrics, and writes
one denormalized row per (region, year).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "curate"))

		emissionsCSV := flagOrDefault(cmd, "emissions", cfg.Paths.EmissionsTidy)
		causesCSV := flagOrDefault(cmd, "causes", cfg.Paths.CausesTidy)
		dischargesCSV := flagOrDefault(cmd, "discharges", cfg.Paths.DischargesTidy)
		populationCSV := flagOrDefault(cmd, "population", cfg.Paths.PopulationTidy)
		output := flagOrDefault(cmd, "output", cfg.Paths.Curated)

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

		aggs := curate.AggregateEmissions(emissions)
		rows, rep := curate.Merge(aggs, population, curate.PivotCauses(causes), curate.PivotDischarges(discharges))
		log.Info("curated merge",
			zap.Int("keys_in", rep.KeysIn),
			zap.Int("keys_out", rep.KeysOut),
			zap.Int("no_population", rep.NoPopulation),
		)

		if err := curate.WriteCurated(output, rows, curate.SectorColumns(aggs)); err != nil {
			return err
		}
		log.Info("curated table written", zap.String("path", output), zap.Int("rows", len(rows)))
		return nil
	},
}

func init() {
	curateCmd.Flags().String("emissions", "", "tidy emissions CSV path (default: from config)")
	curateCmd.Flags().String("causes", "", "tidy causes CSV path (default: from config)")
	curateCmd.Flags().String("discharges", "", "tidy discharges CSV path (default: from config)")
	curateCmd.Flags().String("population", "", "tidy population CSV path (default: from config)")
	curateCmd.Flags().String("output", "", "curated CSV path (default: from config)")
	rootCmd.AddCommand(curateCmd)
}

func flagOrDefault(cmd *cobra.Command, name, def string) string {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return def
	}
	return v
}
