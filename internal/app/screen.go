package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/droidtools/droidusage/internal/adb"
	"github.com/droidtools/droidusage/internal/dumpsys"
)

var screenDevice string

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Show the device's reported screen-on time",
	RunE:  runScreen,
}

func init() {
	screenCmd.Flags().StringVar(&screenDevice, "device", "", "device serial (default: first connected)")

	RootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runner := newRunner(cfg)

	if err := runner.Version(cmd.Context()); err != nil {
		printDeviceHints(err)
		return err
	}
	device, err := runner.Connect(cmd.Context(), screenDevice)
	if err != nil {
		printDeviceHints(err)
		return err
	}

	raw, err := runner.Shell(cmd.Context(), device.Serial, "dumpsys", "battery")
	if err != nil && !errors.Is(err, adb.ErrEmptyOutput) {
		return err
	}

	value, ok := dumpsys.ParseScreenOnTime(raw)
	if !ok {
		fmt.Println("Screen-on time: N/A")
		return nil
	}
	fmt.Printf("Screen-on time: %s\n", value)
	return nil
}
