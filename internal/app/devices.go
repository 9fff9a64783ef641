package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected Android devices",
	Long: `List every device the adb server can see, including devices that are
offline or still waiting for USB debugging authorization. Only devices in
the "device" state can be collected from.`,
	RunE: runDevices,
}

func init() {
	RootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runner := newRunner(cfg)

	if err := runner.Version(cmd.Context()); err != nil {
		printDeviceHints(err)
		return err
	}

	devices, err := runner.Devices(cmd.Context())
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Println("No devices connected")
		return nil
	}

	fmt.Printf("Found %d connected device(s):\n", len(devices))
	for _, d := range devices {
		if d.Usable() {
			fmt.Printf("  - %s\n", d.Serial)
		} else {
			fmt.Printf("  - %s (%s)\n", d.Serial, d.State)
		}
	}
	return nil
}
