package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/climate-health-cli/internal/tidy"
)

var ingestEmissionsCmd = &cobra.Command{
	Use:   "ingest-emissions",
	Short: "Tidy the EDGAR emissions workbook",
	Long: `Reads the multi-sheet EDGAR workbook (one sheet per gas family), melts the
wide year columns into tidy (region, year, gas, sector) records, and writes
them as CSV for the curate and load stages.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "ingest-emissions"))

		workbook := flagOrDefault(cmd, "workbook", cfg.Paths.EmissionsWorkbook)
		output := flagOrDefault(cmd, "output", cfg.Paths.EmissionsTidy)
		groupsFile := flagOrDefault(cmd, "sector-groups", cfg.Sectors.GroupsFile)

		var sectorGroups map[string]string
		if groupsFile != "" {
			groups, err := tidy.LoadSectorGroups(groupsFile)
			if err != nil {
				return err
			}
			sectorGroups = groups
			log.Info("using sector group overrides", zap.String("file", groupsFile), zap.Int("entries", len(groups)))
		}

		records, rep, err := tidy.Emissions(workbook, nil, sectorGroups)
		if err != nil {
			return err
		}
		rep.Log(log, "emissions tidied")

		if err := tidy.WriteEmissionsCSV(output, records); err != nil {
			return err
		}
		log.Info("emissions written", zap.String("path", output), zap.Int("records", len(records)))
		return nil
	},
}

func init() {
	ingestEmissionsCmd.Flags().String("workbook", "", "EDGAR workbook path (default: from config)")
	ingestEmissionsCmd.Flags().String("output", "", "tidy emissions CSV path (default: from config)")
	ingestEmissionsCmd.Flags().String("sector-groups", "", "YAML sector-to-group override file")
	rootCmd.AddCommand(ingestEmissionsCmd)
}
