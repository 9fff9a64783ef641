package output

import (
	"strings"
	"testing"

	"github.com/droidtools/droidusage/internal/store"
)

func TestFormatUsage(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{3723000, "1h02m"},
		{754000, "12m34s"},
		{45000, "45s"},
		{0, "0s"},
		{3600000, "1h00m"},
	}
	for _, tt := range tests {
		if got := FormatUsage(tt.ms); got != tt.want {
			t.Errorf("FormatUsage(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestRenderSummaryTableOrdering(t *testing.T) {
	summary := map[string]int64{
		"com.small":  1000,
		"com.large":  3600000,
		"com.medium": 60000,
	}

	table := RenderSummaryTable(summary, 0)

	large := strings.Index(table, "com.large")
	medium := strings.Index(table, "com.medium")
	small := strings.Index(table, "com.small")
	if large < 0 || medium < 0 || small < 0 {
		t.Fatalf("missing rows:\n%s", table)
	}
	if !(large < medium && medium < small) {
		t.Errorf("rows not sorted by usage desc:\n%s", table)
	}
}

func TestRenderSummaryTableLimit(t *testing.T) {
	summary := map[string]int64{
		"com.a": 100,
		"com.b": 200,
		"com.c": 300,
	}

	table := RenderSummaryTable(summary, 1)
	if strings.Contains(table, "com.a") || strings.Contains(table, "com.b") {
		t.Errorf("limit 1 should keep only the top row:\n%s", table)
	}
	if !strings.Contains(table, "com.c") {
		t.Errorf("top row missing:\n%s", table)
	}
}

func TestRenderSummaryTableEmpty(t *testing.T) {
	if got := RenderSummaryTable(nil, 0); !strings.Contains(got, "No usage data") {
		t.Errorf("empty summary rendered %q", got)
	}
}

func TestRenderRecordTable(t *testing.T) {
	records := []store.UsageRecord{
		{Package: "com.a", TimeUsedMS: 45000, Timestamp: "2026-08-30T10:00:00Z"},
		{Package: "com.b", TimeUsedMS: 60000, Timestamp: "bogus"},
	}

	table := RenderRecordTable(records)
	if !strings.Contains(table, "com.a") || !strings.Contains(table, "2026-08-30 10:00") {
		t.Errorf("record row missing:\n%s", table)
	}
	if !strings.Contains(table, "bogus") {
		t.Errorf("unparsable timestamps should render as-is:\n%s", table)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("com.really.long.package.name", 10); got != "com.rea..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
}
