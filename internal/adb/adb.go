// Package adb runs commands against the Android Debug Bridge tool with
// bounded waits and a small, classified error surface. It never retries;
// callers decide whether a failure is fatal for their run.
package adb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Sentinel errors callers can match with errors.Is.
var (
	// ErrADBNotFound means the adb binary is missing from PATH or did not
	// respond to a liveness probe in time.
	ErrADBNotFound = errors.New("adb not found or not responding")
	// ErrNoDevices means the device listing contained no usable devices.
	ErrNoDevices = errors.New("no devices connected")
	// ErrDeviceNotFound means the requested serial is not in the usable set.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrCommandFailed means adb exited non-zero.
	ErrCommandFailed = errors.New("adb command failed")
	// ErrCommandTimeout means adb did not finish within the bounded wait.
	ErrCommandTimeout = errors.New("adb command timed out")
	// ErrEmptyOutput means adb succeeded but produced no output.
	ErrEmptyOutput = errors.New("adb command produced no output")
)

const (
	defaultProbeTimeout   = 5 * time.Second
	defaultCommandTimeout = 30 * time.Second
)

// Runner executes adb commands. Liveness probes and device enumeration use
// the short probe timeout; data-retrieval commands, which can be slow on
// devices with long usage histories, use the longer command timeout.
type Runner struct {
	path           string
	probeTimeout   time.Duration
	commandTimeout time.Duration
}

// NewRunner creates a Runner for the given adb binary path. An empty path
// means "adb" resolved via PATH; non-positive timeouts fall back to the
// defaults.
func NewRunner(path string, probeTimeout, commandTimeout time.Duration) *Runner {
	if path == "" {
		path = "adb"
	}
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	if commandTimeout <= 0 {
		commandTimeout = defaultCommandTimeout
	}
	return &Runner{
		path:           path,
		probeTimeout:   probeTimeout,
		commandTimeout: commandTimeout,
	}
}

// Version checks that the adb binary is installed and responding. A
// missing binary and an unresponsive one are the same condition for
// callers, so both map to ErrADBNotFound.
func (r *Runner) Version(ctx context.Context) error {
	if _, err := r.run(ctx, r.probeTimeout, "version"); err != nil {
		if errors.Is(err, ErrADBNotFound) || errors.Is(err, ErrCommandTimeout) {
			return ErrADBNotFound
		}
		return fmt.Errorf("adb version check: %w", err)
	}
	return nil
}

// Shell runs a shell command on the given device and returns its trimmed
// stdout. A successful command with no output is reported as
// ErrEmptyOutput so callers can tell "nothing there" from a real read.
func (r *Runner) Shell(ctx context.Context, serial string, args ...string) (string, error) {
	cmdArgs := append([]string{"-s", serial, "shell"}, args...)
	output, err := r.run(ctx, r.commandTimeout, cmdArgs...)
	if err != nil {
		return "", err
	}
	if output == "" {
		return "", ErrEmptyOutput
	}
	return output, nil
}

func (r *Runner) run(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.path, args...)
	// Don't let an orphaned child holding the stdout pipe stall the read
	// past the deadline.
	cmd.WaitDelay = time.Second

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: adb %s", ErrCommandTimeout, strings.Join(args, " "))
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrADBNotFound, r.path)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if stderr != "" {
				return "", fmt.Errorf("%w: adb %s: %s", ErrCommandFailed, strings.Join(args, " "), stderr)
			}
			return "", fmt.Errorf("%w: adb %s: %v", ErrCommandFailed, strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("%w: %v", ErrCommandFailed, err)
	}

	return strings.TrimSpace(string(output)), nil
}
