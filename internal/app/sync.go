package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/droidtools/droidusage/internal/config"
	"github.com/droidtools/droidusage/internal/watcher"
)

var (
	syncDaemon      bool
	syncDaemonChild bool
	syncPIDFile     string
	syncLogFile     string
	syncStop        bool
	syncOnce        bool

	syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Keep the dashboard mirror in sync with the primary history",
		Long: `Watch the primary usage document and copy it to the dashboard mirror
whenever it changes.

The store mirrors its own writes, so sync is only needed when something
else updates the primary copy — another droidusage invocation with a
different mirror directory, a restore from backup, or a manual edit.

Sync modes:
  • Foreground (default): run in the current terminal, Ctrl+C to stop
  • Daemon: run as a background process
  • Once: copy the document a single time and exit`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  droidusage sync

  # Copy once and exit
  droidusage sync --once

  # Run as background daemon
  droidusage sync --daemon

  # Stop a running daemon
  droidusage sync --stop`,
		RunE: runSync,
	}
)

func init() {
	syncCmd.Flags().BoolVar(&syncDaemon, "daemon", false, "run as background daemon")
	syncCmd.Flags().BoolVar(&syncDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	syncCmd.Flags().StringVar(&syncPIDFile, "pid-file", "", "PID file path (default: ~/.droidusage/sync.pid)")
	syncCmd.Flags().StringVar(&syncLogFile, "log-file", "", "log file path (default: ~/.droidusage/sync.log)")
	syncCmd.Flags().BoolVar(&syncStop, "stop", false, "stop running daemon")
	syncCmd.Flags().BoolVar(&syncOnce, "once", false, "sync once and exit")

	// Hide the internal daemon-child flag from help
	syncCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		syncPIDFile = defaultPID
	}
	if syncLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		syncLogFile = defaultLog
	}

	if syncStop {
		if err := watcher.StopDaemon(syncPIDFile); err != nil {
			return err
		}
		fmt.Println("Sync daemon stopped.")
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	w, err := watcher.New(st.Path(), st.MirrorPath())
	if err != nil {
		return err
	}

	if syncOnce {
		if err := w.Sync(); err != nil {
			return err
		}
		fmt.Printf("Mirrored %s to %s\n", st.Path(), st.MirrorPath())
		return nil
	}

	if syncDaemon {
		if err := w.StartDaemon(syncPIDFile, syncLogFile, daemonChildArgs(cfg)); err != nil {
			return err
		}
		fmt.Println("Sync daemon started.")
		fmt.Printf("PID file: %s\n", syncPIDFile)
		fmt.Printf("Log file: %s\n", syncLogFile)
		return nil
	}

	if syncDaemonChild {
		return w.RunDaemon(syncPIDFile)
	}

	// Foreground mode
	if err := w.Start(); err != nil {
		return err
	}
	fmt.Printf("Watching %s (Ctrl+C to stop)\n", st.Path())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	fmt.Println("\nStopping...")
	return w.Stop()
}

// daemonChildArgs builds the argv the daemon child is re-executed with.
// The child is a fresh process, so the resolved paths are forwarded
// explicitly: without them it would re-derive defaults and watch a
// different store, and remove a different PID file than the one the
// parent wrote.
func daemonChildArgs(cfg config.Config) []string {
	return []string{
		"sync", "--daemon-child",
		"--data-dir", cfg.DataDir,
		"--mirror-dir", cfg.MirrorDir,
		"--pid-file", syncPIDFile,
		"--log-file", syncLogFile,
	}
}
