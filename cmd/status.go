package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/climate-health-cli/internal/warehouse"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Verify warehouse integrity and print a summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		driver := flagOrDefault(cmd, "driver", cfg.Warehouse.Driver)
		dsn := flagOrDefault(cmd, "db", cfg.Warehouse.DSN)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		wh, err := warehouse.New(ctx, warehouse.Config{Driver: driver, DSN: dsn})
		if err != nil {
			return err
		}
		defer wh.Close()

		report, err := wh.Verify(ctx)
		if err != nil {
			return err
		}
		printIntegrity(report)
		return nil
	},
}

func init() {
	statusCmd.Flags().String("driver", "", "warehouse driver: sqlite or postgres (default: from config)")
	statusCmd.Flags().String("db", "", "warehouse DSN (default: from config)")
	rootCmd.AddCommand(statusCmd)
}

func nutsLevelName(level int) string {
	switch level {
	case 0:
		return "Country"
	case 1:
		return "NUTS1"
	case 2:
		return "NUTS2"
	default:
		return "NUTS3+"
	}
}

func printIntegrity(report *warehouse.IntegrityReport) {
	fmt.Println("Warehouse Status")
	fmt.Println("================")

	fmt.Println("\nTable counts:")
	tables := make([]string, 0, len(report.TableCounts))
	for table := range report.TableCounts {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	for _, table := range tables {
		fmt.Printf("  %-26s %d\n", table, report.TableCounts[table])
	}

	if len(report.NUTSLevels) > 0 {
		fmt.Println("\nGeography by NUTS level:")
		levels := make([]int, 0, len(report.NUTSLevels))
		for level := range report.NUTSLevels {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			fmt.Printf("  %-26s %d\n", nutsLevelName(level), report.NUTSLevels[level])
		}
	}

	if report.MinYear > 0 {
		fmt.Printf("\nYear range: %d-%d\n", report.MinYear, report.MaxYear)
	}

	if report.Orphans() == 0 {
		fmt.Println("\nOrphaned fact rows: none")
	} else {
		fmt.Printf("\nOrphaned fact rows: %d\n", report.Orphans())
		fmt.Printf("  fact_emissions:           %d\n", report.OrphanEmissions)
		fmt.Printf("  fact_causes_of_death:     %d\n", report.OrphanCauses)
		fmt.Printf("  fact_hospital_discharges: %d\n", report.OrphanDischarges)
		fmt.Printf("  fact_population:          %d\n", report.OrphanPopulation)
	}
}
