// Package dumpsys extracts structured data from the human-readable reports
// produced by Android's dumpsys service.
//
// The reports are debugging output, not a stable format, so every parser
// here is fail-soft: lines that do not match are skipped, malformed values
// fall back to zero, and a report without the expected section yields an
// empty result instead of an error.
package dumpsys

import (
	"regexp"
	"strings"
	"time"

	"github.com/droidtools/droidusage/internal/store"
)

// Section markers in `dumpsys usagestats` output. Only the daily section
// is read: it is the finest granularity the report offers, and the weekly
// and monthly sections aggregate the same usage again.
const (
	dailySectionMarker   = "In-memory daily stats"
	weeklySectionMarker  = "In-memory weekly stats"
	monthlySectionMarker = "In-memory monthly stats"
)

var (
	packageRe  = regexp.MustCompile(`package=(\S+)`)
	timeUsedRe = regexp.MustCompile(`totalTimeUsed="([^"]+)"`)
)

// UsageParser extracts per-package usage records from a raw
// `dumpsys usagestats` report.
type UsageParser struct{}

// Parse scans the report line by line. Lines before the daily stats marker
// are discarded; the first weekly or monthly marker ends extraction. A
// matching line needs both a package= field and a quoted totalTimeUsed=
// field; records whose duration parses to zero are dropped, since apps
// with no usage carry no information. capturedAt is stamped onto every
// emitted record.
func (UsageParser) Parse(raw string, capturedAt time.Time) []store.UsageRecord {
	ts := capturedAt.Format(time.RFC3339)
	inDailyStats := false

	var records []store.UsageRecord
	for _, line := range strings.Split(raw, "\n") {
		if !inDailyStats {
			if strings.Contains(line, dailySectionMarker) {
				inDailyStats = true
			}
			continue
		}
		if strings.Contains(line, weeklySectionMarker) || strings.Contains(line, monthlySectionMarker) {
			break
		}
		if !strings.Contains(line, "package=") || !strings.Contains(line, "totalTimeUsed=") {
			continue
		}

		pkg := packageRe.FindStringSubmatch(line)
		used := timeUsedRe.FindStringSubmatch(line)
		if pkg == nil || used == nil {
			continue
		}

		timeMS := ParseClockDuration(used[1])
		if timeMS == 0 {
			continue
		}

		records = append(records, store.UsageRecord{
			Package:    pkg[1],
			TimeUsedMS: timeMS,
			Timestamp:  ts,
		})
	}
	return records
}
