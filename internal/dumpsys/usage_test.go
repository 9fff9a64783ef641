package dumpsys

import (
	"testing"
	"time"
)

// Test data: abbreviated dumpsys usagestats output. Real reports carry a
// lot of unrelated lines; the parser only cares about the daily section.
const mockUsageStatsDump = `Usage stats service state
  settings noise
In-memory daily stats
  timeRange="8/29/2026, 12:00 AM" - "8/30/2026, 12:00 AM"
  package=com.a.b totalTimeUsed="1:02:03" lastTimeUsed="8/29/2026, 9:14 PM"
  package=com.idle.app totalTimeUsed="0:00" lastTimeUsed="8/29/2026, 7:00 AM"
  package=com.bad.quoting totalTimeUsed=12:34 lastTimeUsed="8/29/2026, 8:00 AM"
In-memory weekly stats
  package=com.out.of.section totalTimeUsed="5:00" lastTimeUsed="8/25/2026, 1:00 PM"
`

const mockMultiPackageDump = `In-memory daily stats
  package=com.android.chrome totalTimeUsed="12:34"
  package=org.mozilla.firefox totalTimeUsed="1:00:00"
  package=com.android.chrome totalTimeUsed="0:45"
In-memory monthly stats
  package=com.android.chrome totalTimeUsed="99:59:59"
`

func TestParseDailySectionOnly(t *testing.T) {
	capturedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	records := UsageParser{}.Parse(mockUsageStatsDump, capturedAt)

	if len(records) != 1 {
		t.Fatalf("expected exactly 1 record, got %d: %+v", len(records), records)
	}
	r := records[0]
	if r.Package != "com.a.b" {
		t.Errorf("package = %q, want %q", r.Package, "com.a.b")
	}
	if r.TimeUsedMS != 3723000 {
		t.Errorf("time_used_ms = %d, want 3723000", r.TimeUsedMS)
	}
	if r.Timestamp != capturedAt.Format(time.RFC3339) {
		t.Errorf("timestamp = %q, want %q", r.Timestamp, capturedAt.Format(time.RFC3339))
	}
}

func TestParseStopsAtSectionTerminator(t *testing.T) {
	records := UsageParser{}.Parse(mockMultiPackageDump, time.Now())

	if len(records) != 3 {
		t.Fatalf("expected 3 records from the daily section, got %d", len(records))
	}
	for _, r := range records {
		if r.Package == "com.out.of.section" {
			t.Errorf("record leaked from outside the daily section: %+v", r)
		}
	}
}

func TestParsePreservesOrderAndDuplicates(t *testing.T) {
	records := UsageParser{}.Parse(mockMultiPackageDump, time.Now())

	want := []struct {
		pkg string
		ms  int64
	}{
		{"com.android.chrome", 754000},
		{"org.mozilla.firefox", 3600000},
		{"com.android.chrome", 45000},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, w := range want {
		if records[i].Package != w.pkg || records[i].TimeUsedMS != w.ms {
			t.Errorf("record %d = {%s %d}, want {%s %d}",
				i, records[i].Package, records[i].TimeUsedMS, w.pkg, w.ms)
		}
	}
}

func TestParseZeroUsageDropped(t *testing.T) {
	raw := "In-memory daily stats\n" +
		`  package=com.idle totalTimeUsed="0:00"` + "\n"

	if records := (UsageParser{}).Parse(raw, time.Now()); len(records) != 0 {
		t.Errorf("expected zero-usage record to be dropped, got %+v", records)
	}
}

func TestParseMissingMarker(t *testing.T) {
	raw := `package=com.a.b totalTimeUsed="1:02:03"` + "\n"

	if records := (UsageParser{}).Parse(raw, time.Now()); len(records) != 0 {
		t.Errorf("expected empty result without the daily marker, got %+v", records)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if records := (UsageParser{}).Parse("", time.Now()); len(records) != 0 {
		t.Errorf("expected no records for empty input, got %+v", records)
	}
}
