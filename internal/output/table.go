// Package output renders droidusage results for the terminal.
//
// Tables use ASCII layout with ANSI colors when stdout is a TTY and
// NO_COLOR is unset. Rendering functions return strings so they are
// trivially testable.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"

	"github.com/droidtools/droidusage/internal/store"
)

const (
	colorReset = "\033[0m"
	colorGray  = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderSummaryTable renders per-app usage totals, most used first.
// limit bounds the number of rows; non-positive means all.
func RenderSummaryTable(summary map[string]int64, limit int) string {
	if len(summary) == 0 {
		return "No usage data recorded.\n"
	}

	type row struct {
		pkg string
		ms  int64
	}
	rows := lo.MapToSlice(summary, func(pkg string, ms int64) row {
		return row{pkg: pkg, ms: ms}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ms != rows[j].ms {
			return rows[i].ms > rows[j].ms
		}
		return rows[i].pkg < rows[j].pkg
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-44s %10s %8s\n", "Package", "Total", "Hours"))
	sb.WriteString(strings.Repeat("─", 64))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-44s %10s %8.2f\n",
			truncate(r.pkg, 44),
			FormatUsage(r.ms),
			float64(r.ms)/float64(time.Hour/time.Millisecond)))
	}
	return sb.String()
}

// RenderRecordTable renders individual records in stored order.
func RenderRecordTable(records []store.UsageRecord) string {
	if len(records) == 0 {
		return "No records found.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-44s %10s  %s\n", "Package", "Used", "Captured"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("%-44s %10s  %s\n",
			truncate(r.Package, 44),
			FormatUsage(r.TimeUsedMS),
			formatCaptured(r.Timestamp)))
	}
	return sb.String()
}

// FormatUsage renders a millisecond total as a compact clock-style string.
func FormatUsage(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}

// FormatLastUpdated renders the store watermark relative to now, e.g.
// "2 days ago". Unparsable watermarks are shown as-is.
func FormatLastUpdated(ts string) string {
	t, err := store.ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return humanize.Time(t)
}

// formatCaptured shortens a record timestamp for table display.
func formatCaptured(ts string) string {
	t, err := store.ParseTimestamp(ts)
	if err != nil {
		return colorize(colorGray, ts)
	}
	return t.Format("2006-01-02 15:04")
}

// truncate shortens a string to maxLen, appending "..." when cut.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
