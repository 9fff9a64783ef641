package app

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/droidtools/droidusage/internal/adb"
	"github.com/droidtools/droidusage/internal/dumpsys"
)

var appsDevice string

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List packages installed on the device",
	RunE:  runApps,
}

func init() {
	appsCmd.Flags().StringVar(&appsDevice, "device", "", "device serial (default: first connected)")

	RootCmd.AddCommand(appsCmd)
}

func runApps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runner := newRunner(cfg)

	if err := runner.Version(cmd.Context()); err != nil {
		printDeviceHints(err)
		return err
	}
	device, err := runner.Connect(cmd.Context(), appsDevice)
	if err != nil {
		printDeviceHints(err)
		return err
	}

	raw, err := runner.Shell(cmd.Context(), device.Serial, "pm", "list", "packages")
	if err != nil {
		if errors.Is(err, adb.ErrEmptyOutput) {
			fmt.Println("No packages reported")
			return nil
		}
		return err
	}

	packages := dumpsys.ParsePackageList(raw)
	sort.Strings(packages)
	for _, pkg := range packages {
		fmt.Println(pkg)
	}
	fmt.Printf("\n%d packages installed on %s\n", len(packages), device.Serial)
	return nil
}
