package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/climate-health-cli/internal/tidy"
)

var ingestHealthCmd = &cobra.Command{
	Use:   "ingest-health",
	Short: "Tidy the Eurostat health extracts",
	Long: `Melts the causes-of-death (hlth_cd_asdr2) and hospital discharges
(hlth_co_disch1t) TSV extracts into tidy per-(region, year, ICD-10 group)
records and writes them as CSV.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "ingest-health"))

		causesTSV := flagOrDefault(cmd, "causes", cfg.Paths.CausesTSV)
		dischargesTSV := flagOrDefault(cmd, "discharges", cfg.Paths.DischargesTSV)
		causesOut := flagOrDefault(cmd, "causes-output", cfg.Paths.CausesTidy)
		dischargesOut := flagOrDefault(cmd, "discharges-output", cfg.Paths.DischargesTidy)

		causes, rep, err := tidy.CausesOfDeath(causesTSV)
		if err != nil {
			return err
		}
		rep.Log(log, "causes of death tidied")
		if err := tidy.WriteCausesCSV(causesOut, causes); err != nil {
			return err
		}
		log.Info("causes of death written", zap.String("path", causesOut), zap.Int("records", len(causes)))

		discharges, rep, err := tidy.HospitalDischarges(dischargesTSV)
		if err != nil {
			return err
		}
		rep.Log(log, "hospital discharges tidied")
		if err := tidy.WriteDischargesCSV(dischargesOut, discharges); err != nil {
			return err
		}
		log.Info("hospital discharges written", zap.String("path", dischargesOut), zap.Int("records", len(discharges)))
		return nil
	},
}

func init() {
	ingestHealthCmd.Flags().String("causes", "", "causes-of-death TSV path (default: from config)")
	ingestHealthCmd.Flags().String("discharges", "", "hospital discharges TSV path (default: from config)")
	ingestHealthCmd.Flags().String("causes-output", "", "tidy causes CSV path (default: from config)")
	ingestHealthCmd.Flags().String("discharges-output", "", "tidy discharges CSV path (default: from config)")
	rootCmd.AddCommand(ingestHealthCmd)
}
