package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/droidtools/droidusage/internal/adb"
	"github.com/droidtools/droidusage/internal/config"
	"github.com/droidtools/droidusage/internal/store"
)

// openStore opens the usage store using the resolved configuration.
func openStore(cfg config.Config) (*store.Store, error) {
	st, err := store.New(cfg.DataDir, cfg.MirrorDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage store: %w", err)
	}
	return st, nil
}

// newRunner builds an adb runner from the resolved configuration.
func newRunner(cfg config.Config) *adb.Runner {
	return adb.NewRunner(cfg.ADBPath, cfg.ProbeTimeout.Std(), cfg.CommandTimeout.Std())
}

// dataFilePath returns where the primary usage document lives for cfg.
func dataFilePath(cfg config.Config) string {
	return filepath.Join(cfg.DataDir, store.FileName)
}

// formatHours renders milliseconds as fractional hours, the unit the
// dashboard uses.
func formatHours(ms int64) string {
	return fmt.Sprintf("%.2f hours", float64(ms)/(1000*60*60))
}

// printDeviceHints writes troubleshooting guidance for connection
// failures, mirroring what users actually need to check on the device.
func printDeviceHints(err error) {
	switch {
	case errors.Is(err, adb.ErrADBNotFound):
		fmt.Fprintln(os.Stderr, "adb is not installed or not responding.")
		fmt.Fprintln(os.Stderr, "Install Android SDK Platform Tools and make sure adb is on PATH.")
	case errors.Is(err, adb.ErrNoDevices), errors.Is(err, adb.ErrDeviceNotFound):
		fmt.Fprintln(os.Stderr, "Could not reach the device. Make sure:")
		fmt.Fprintln(os.Stderr, "  1. The device is connected via USB")
		fmt.Fprintln(os.Stderr, "  2. USB debugging is enabled")
		fmt.Fprintln(os.Stderr, "  3. The device is authorized (check the device screen)")
		fmt.Fprintln(os.Stderr, "Run 'droidusage devices' to list available devices.")
	}
}

// getDefaultPIDFile returns the default PID file path for the sync daemon.
func getDefaultPIDFile() (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sync.pid"), nil
}

// getDefaultLogFile returns the default log file path for the sync daemon.
func getDefaultLogFile() (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sync.log"), nil
}

func stateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(home, ".droidusage")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create droidusage directory: %w", err)
	}
	return dir, nil
}
