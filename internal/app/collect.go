package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/droidtools/droidusage/internal/collector"
	"github.com/droidtools/droidusage/internal/dumpsys"
)

var (
	collectDays   int
	collectDevice string
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect app usage data from a connected device",
	Long: `Pull per-app usage statistics from an Android device and append them to
the local usage history.

The device's usagestats report is read over adb, the daily stats section
is parsed into usage records, and the records are appended to the JSON
history. The history is also mirrored to the dashboard directory.

Apps with zero recorded usage are not stored. A run that retrieves no
records still updates the last-updated watermark.`,
	Example: `  # Collect from the first connected device
  droidusage collect

  # Collect from a specific device
  droidusage collect --device emulator-5554

  # Request a 30-day lookback window
  droidusage collect --days 30`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().IntVar(&collectDays, "days", 7, "lookback window in days")
	collectCmd.Flags().StringVar(&collectDevice, "device", "", "device serial (default: first connected)")

	RootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	if collectDays <= 0 {
		return fmt.Errorf("invalid days: %d (must be positive)", collectDays)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	c := collector.New(newRunner(cfg), dumpsys.UsageParser{}, st, cfg.TopApps)

	fmt.Printf("Collecting usage data for the last %d days...\n", collectDays)
	summary, err := c.Run(cmd.Context(), collector.Options{
		Device: collectDevice,
		Days:   collectDays,
	})
	if err != nil {
		printDeviceHints(err)
		return err
	}

	fmt.Printf("Connected to: %s\n", summary.Device.Serial)

	if summary.Records == 0 {
		fmt.Println()
		fmt.Println("WARNING: no usage data retrieved")
		fmt.Println("This can happen when:")
		fmt.Println("  1. No apps have been used on the device")
		fmt.Println("  2. Usage stats access is not granted")
		fmt.Println("  3. This Android version formats the report differently")
		return nil
	}

	fmt.Printf("Retrieved %d usage records\n", summary.Records)
	fmt.Println()
	fmt.Printf("Data saved to: %s\n", st.Path())
	fmt.Printf("Total records in storage: %d\n", summary.TotalStored)

	if len(summary.TopApps) > 0 {
		fmt.Printf("\nTop %d most used apps:\n", len(summary.TopApps))
		for i, app := range summary.TopApps {
			fmt.Printf("  %d. %s: %s\n", i+1, app.Package, formatHours(app.TimeUsedMS))
		}
	}

	return nil
}
