// Package collector drives one end-to-end collection run: probe the adb
// tool, resolve a device, pull the usagestats report, parse it, and append
// the results to the store.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/droidtools/droidusage/internal/adb"
	"github.com/droidtools/droidusage/internal/store"
)

// ReportParser turns a raw usagestats report into usage records. The
// extraction rules sit behind this interface because the report format is
// undocumented and shifts between Android releases; swapping the grammar
// must not touch the store or the run sequencing.
type ReportParser interface {
	Parse(raw string, capturedAt time.Time) []store.UsageRecord
}

// Options configure a single collection run.
type Options struct {
	// Device is the serial to collect from; empty selects the first
	// usable device.
	Device string
	// Days is the requested lookback window. dumpsys returns whatever it
	// has retained regardless, so this is advisory.
	Days int
}

// AppTotal is one row of the per-app usage summary.
type AppTotal struct {
	Package    string
	TimeUsedMS int64
}

// Summary describes what a collection run produced.
type Summary struct {
	Device      adb.Device
	Records     int
	TotalStored int
	TopApps     []AppTotal
}

// Collector wires the executor, parser and store together for a run.
type Collector struct {
	runner *adb.Runner
	parser ReportParser
	store  *store.Store
	topN   int
}

// New creates a Collector. topN bounds the summary returned from Run;
// non-positive values fall back to 5.
func New(runner *adb.Runner, parser ReportParser, st *store.Store, topN int) *Collector {
	if topN <= 0 {
		topN = 5
	}
	return &Collector{runner: runner, parser: parser, store: st, topN: topN}
}

// Run performs one collection run. Tool verification and device resolution
// failures abort the run. A report that yields no records is a successful
// empty run: it is still appended so the watermark records that the run
// happened.
func (c *Collector) Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := c.runner.Version(ctx); err != nil {
		return nil, err
	}

	device, err := c.runner.Connect(ctx, opts.Device)
	if err != nil {
		return nil, err
	}

	raw, err := c.runner.Shell(ctx, device.Serial, "dumpsys", "usagestats")
	if err != nil && !errors.Is(err, adb.ErrEmptyOutput) {
		return nil, fmt.Errorf("failed to read usage stats: %w", err)
	}

	var records []store.UsageRecord
	if raw != "" {
		records = c.parser.Parse(raw, time.Now())
	}

	if err := c.store.Append(records); err != nil {
		return nil, fmt.Errorf("failed to save usage data: %w", err)
	}

	return &Summary{
		Device:      device,
		Records:     len(records),
		TotalStored: len(c.store.All()),
		TopApps:     c.topApps(),
	}, nil
}

// topApps folds the stored history into the N most-used packages.
func (c *Collector) topApps() []AppTotal {
	apps := lo.MapToSlice(c.store.SummaryByApp(), func(pkg string, ms int64) AppTotal {
		return AppTotal{Package: pkg, TimeUsedMS: ms}
	})
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].TimeUsedMS != apps[j].TimeUsedMS {
			return apps[i].TimeUsedMS > apps[j].TimeUsedMS
		}
		return apps[i].Package < apps[j].Package
	})
	if len(apps) > c.topN {
		apps = apps[:c.topN]
	}
	return apps
}
