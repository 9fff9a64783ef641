package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/droidtools/droidusage/internal/config"
)

var (
	cfgFile   string
	dataDir   string
	mirrorDir string

	// RootCmd is the root command for droidusage
	RootCmd = &cobra.Command{
		Use:   "droidusage",
		Short: "Collect Android app usage statistics over adb",
		Long: `droidusage pulls per-app usage statistics from an Android device over
adb and keeps a cumulative JSON history on disk. A second copy of the
history is mirrored to a dashboard directory for downstream readers.

The device must be connected via USB with USB debugging enabled and
authorized for this machine.

Quick Start:
  1. droidusage devices          # confirm the device is visible
  2. droidusage collect          # pull usage data and store it
  3. droidusage stats            # view per-app totals

Examples:
  # Collect from the first connected device
  droidusage collect

  # Collect from a specific device
  droidusage collect --device emulator-5554

  # Show per-app totals
  droidusage stats

  # Export the history to CSV
  droidusage export --out usage.csv

  # Keep the dashboard mirror fresh in the background
  droidusage sync --daemon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Println("droidusage: Android app usage collection over adb")
			fmt.Println()
			if _, err := os.Stat(dataFilePath(cfg)); os.IsNotExist(err) {
				fmt.Println("Run 'droidusage collect' to pull usage data from a device.")
				fmt.Println("Run 'droidusage --help' for the full reference.")
			} else {
				fmt.Println("Tip: Run 'droidusage stats' to view per-app totals.")
				fmt.Println("     Run 'droidusage doctor' to check system health.")
				fmt.Println("     Run 'droidusage --help' for all commands.")
			}
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.droidusage/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "primary data directory (default: ~/.droidusage/data)")
	RootCmd.PersistentFlags().StringVar(&mirrorDir, "mirror-dir", "", "dashboard mirror directory (default: ~/.droidusage/dashboard)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig resolves configuration: flag values override the config file,
// which overrides the built-in defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if mirrorDir != "" {
		cfg.MirrorDir = mirrorDir
	}
	return cfg, nil
}
