package app

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/droidtools/droidusage/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common issues and check system health",
	Long: `Runs diagnostic checks on your droidusage setup.

Checks:
  • adb is installed and responding
  • A usable device is connected
  • The usage history exists and has records
  • The dashboard mirror matches the primary copy`,
	RunE: runDoctor,
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("Running droidusage diagnostics...")
	fmt.Println()

	// Critical issues make the command fail; warnings are informational
	// and common on fresh setups.
	criticalIssues := 0
	warningIssues := 0

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println("✗ Configuration error:", err)
		return fmt.Errorf("doctor found 1 critical issue")
	}

	// Check 1: adb reachable
	runner := newRunner(cfg)
	if err := runner.Version(cmd.Context()); err != nil {
		fmt.Println("✗ adb is not installed or not responding")
		fmt.Println("  Action: Install Android SDK Platform Tools")
		criticalIssues++
	} else {
		fmt.Println("✓ adb is installed and responding")

		// Check 2: device present — warning only, collection can wait
		devices, err := runner.Devices(cmd.Context())
		usable := 0
		for _, d := range devices {
			if d.Usable() {
				usable++
			}
		}
		switch {
		case err != nil:
			fmt.Println("⚠ Cannot list devices:", err)
			warningIssues++
		case usable == 0:
			fmt.Println("⚠ No usable device connected")
			fmt.Println("  Action: Connect a device with USB debugging enabled")
			warningIssues++
		default:
			fmt.Printf("✓ %d usable device(s) connected\n", usable)
		}
	}

	// Check 3: usage history
	st, err := openStore(cfg)
	if err != nil {
		fmt.Println("✗ Cannot open usage store:", err)
		criticalIssues++
	} else {
		fmt.Println("✓ Usage history found:", st.Path())

		records := st.All()
		if len(records) == 0 {
			fmt.Println("⚠ No usage records stored yet")
			fmt.Println("  This is normal before the first collection")
			warningIssues++
		} else {
			fmt.Printf("✓ %d usage records stored\n", len(records))
		}
		if ts, ok := st.LastUpdated(); ok {
			fmt.Printf("✓ Last updated %s\n", output.FormatLastUpdated(ts))
		}

		// Check 4: mirror in sync — warning only, the mirror is best effort
		primary, perr := os.ReadFile(st.Path())
		mirror, merr := os.ReadFile(st.MirrorPath())
		switch {
		case perr != nil:
			fmt.Println("⚠ Cannot read primary document:", perr)
			warningIssues++
		case merr != nil:
			fmt.Println("⚠ Dashboard mirror is missing:", st.MirrorPath())
			fmt.Println("  Action: Run 'droidusage sync'")
			warningIssues++
		case !bytes.Equal(primary, mirror):
			fmt.Println("⚠ Dashboard mirror is out of sync")
			fmt.Println("  Action: Run 'droidusage sync'")
			warningIssues++
		default:
			fmt.Println("✓ Dashboard mirror matches the primary copy")
		}
	}

	fmt.Println()
	switch {
	case criticalIssues > 0:
		return fmt.Errorf("doctor found %d critical issue(s)", criticalIssues)
	case warningIssues > 0:
		fmt.Printf("Done: %d warning(s), no critical issues.\n", warningIssues)
	default:
		fmt.Println("All checks passed.")
	}
	return nil
}
