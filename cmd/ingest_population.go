package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/climate-health-cli/internal/tidy"
)

var ingestPopulationCmd = &cobra.Command{
	Use:   "ingest-population",
	Short: "Tidy the Eurostat population extract",
	Long: `Melts the regional population TSV (demo_r_pjangrp3) into tidy
(region, year, population) records, keeping only annual both-sexes all-ages
totals with a positive count.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "ingest-population"))

		input := flagOrDefault(cmd, "input", cfg.Paths.PopulationTSV)
		output := flagOrDefault(cmd, "output", cfg.Paths.PopulationTidy)

		records, rep, err := tidy.Population(input)
		if err != nil {
			return err
		}
		rep.Log(log, "population tidied")

		if err := tidy.WritePopulationCSV(output, records); err != nil {
			return err
		}
		log.Info("population written", zap.String("path", output), zap.Int("records", len(records)))
		return nil
	},
}

func init() {
	ingestPopulationCmd.Flags().String("input", "", "population TSV path (default: from config)")
	ingestPopulationCmd.Flags().String("output", "", "tidy population CSV path (default: from config)")
	rootCmd.AddCommand(ingestPopulationCmd)
}
