package adb

import (
	"context"
	"fmt"
	"strings"
)

// Device is one entry from `adb devices` output.
type Device struct {
	Serial string
	State  string
}

// Usable reports whether adb can run shell commands against the device.
// Offline and unauthorized devices appear in the listing but reject
// commands; only the literal "device" state is connected.
func (d Device) Usable() bool {
	return d.State == "device"
}

// Devices enumerates everything the adb server currently knows about,
// usable or not.
func (r *Runner) Devices(ctx context.Context) ([]Device, error) {
	output, err := r.run(ctx, r.probeTimeout, "devices")
	if err != nil {
		return nil, err
	}
	return parseDeviceList(output), nil
}

// Connect resolves which device a run should target. An empty serial
// selects the first usable device; a non-empty serial must be present and
// usable. The resolved Device is returned as a value so callers thread it
// through explicitly instead of relying on shared connection state.
func (r *Runner) Connect(ctx context.Context, serial string) (Device, error) {
	devices, err := r.Devices(ctx)
	if err != nil {
		return Device{}, err
	}

	var usable []Device
	for _, d := range devices {
		if d.Usable() {
			usable = append(usable, d)
		}
	}
	if len(usable) == 0 {
		return Device{}, ErrNoDevices
	}

	if serial == "" {
		return usable[0], nil
	}
	for _, d := range usable {
		if d.Serial == serial {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, serial)
}

// parseDeviceList parses `adb devices` output: a header line followed by
// one "<serial>\t<state>" line per device. Daemon startup chatter and
// blank lines are skipped.
func parseDeviceList(output string) []Device {
	lines := strings.Split(output, "\n")
	if len(lines) > 0 && strings.Contains(lines[0], "List of devices") {
		lines = lines[1:]
	}

	var devices []Device
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if strings.HasPrefix(fields[0], "*") {
			// "* daemon started successfully *" style noise
			continue
		}
		devices = append(devices, Device{Serial: fields[0], State: fields[1]})
	}
	return devices
}
