package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/droidtools/droidusage/internal/output"
)

var (
	statsPackage string
	statsFrom    string
	statsTo      string
	statsLimit   int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored usage statistics",
	Long: `Display usage statistics from the local history.

Without flags, shows total usage per app, most used first.
Use --package to list every stored record for one app.
Use --from and --to together to list records in a date range.`,
	Example: `  # Per-app totals
  droidusage stats

  # Only the top 10 apps
  droidusage stats --limit 10

  # Every record for one app
  droidusage stats --package com.android.chrome

  # Records captured in March
  droidusage stats --from 2026-03-01 --to 2026-03-31`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsPackage, "package", "", "show records for a specific package")
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "range start (RFC 3339 timestamp or YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "range end (RFC 3339 timestamp or YYYY-MM-DD)")
	statsCmd.Flags().IntVar(&statsLimit, "limit", 0, "maximum rows in the summary (0 = all)")

	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	if ts, ok := st.LastUpdated(); ok {
		fmt.Printf("Last updated: %s\n\n", output.FormatLastUpdated(ts))
	} else {
		fmt.Print("No data collected yet. Run 'droidusage collect' first.\n\n")
	}

	if statsPackage != "" {
		records := st.ByPackage(statsPackage)
		if len(records) == 0 {
			fmt.Printf("No records for %s\n", statsPackage)
			return nil
		}
		fmt.Print(output.RenderRecordTable(records))

		var total int64
		for _, r := range records {
			total += r.TimeUsedMS
		}
		fmt.Printf("\nTotal: %s across %d records\n", output.FormatUsage(total), len(records))
		return nil
	}

	if statsFrom != "" || statsTo != "" {
		if statsFrom == "" || statsTo == "" {
			return fmt.Errorf("--from and --to must be used together")
		}
		records, err := st.ByDateRange(statsFrom, statsTo)
		if err != nil {
			return err
		}
		fmt.Print(output.RenderRecordTable(records))
		return nil
	}

	fmt.Print(output.RenderSummaryTable(st.SummaryByApp(), statsLimit))
	return nil
}
