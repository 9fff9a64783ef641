package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/droidtools/droidusage/internal/store"
)

// seedStore fills the flag-selected store with a few records.
func seedStore(t *testing.T) *store.Store {
	t.Helper()
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	st, err := openStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	err = st.Append([]store.UsageRecord{
		{Package: "com.a", TimeUsedMS: 100, Timestamp: "2026-08-01T10:00:00Z"},
		{Package: "com.b", TimeUsedMS: 200, Timestamp: "2026-08-02T10:00:00Z"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestRunExport(t *testing.T) {
	withFlags(t)
	seedStore(t)

	out := filepath.Join(t.TempDir(), "usage.csv")
	origOut := exportOut
	t.Cleanup(func() { exportOut = origOut })
	exportOut = out

	if err := runExport(exportCmd, nil); err != nil {
		t.Fatalf("runExport: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if !strings.Contains(string(data), "com.a,100,2026-08-01T10:00:00Z") {
		t.Errorf("export content:\n%s", data)
	}
}

func TestRunExportEmptyStoreWritesNothing(t *testing.T) {
	withFlags(t)

	out := filepath.Join(t.TempDir(), "usage.csv")
	origOut := exportOut
	t.Cleanup(func() { exportOut = origOut })
	exportOut = out

	if err := runExport(exportCmd, nil); err != nil {
		t.Fatalf("runExport on empty store: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("no file should be created for an empty store")
	}
}

func TestRunClearRequiresConfirmation(t *testing.T) {
	withFlags(t)
	st := seedStore(t)

	origYes := clearYes
	t.Cleanup(func() { clearYes = origYes })

	clearYes = false
	if err := runClear(clearCmd, nil); err != nil {
		t.Fatalf("runClear without --yes: %v", err)
	}
	if got := len(st.All()); got != 2 {
		t.Errorf("records deleted without confirmation: %d left", got)
	}

	clearYes = true
	if err := runClear(clearCmd, nil); err != nil {
		t.Fatalf("runClear --yes: %v", err)
	}
	if got := len(st.All()); got != 0 {
		t.Errorf("records after clear = %d, want 0", got)
	}
}

func TestRunStatsSmoke(t *testing.T) {
	withFlags(t)
	seedStore(t)

	origPkg, origFrom, origTo := statsPackage, statsFrom, statsTo
	t.Cleanup(func() { statsPackage, statsFrom, statsTo = origPkg, origFrom, origTo })

	statsPackage, statsFrom, statsTo = "", "", ""
	if err := runStats(statsCmd, nil); err != nil {
		t.Errorf("summary stats: %v", err)
	}

	statsPackage = "com.a"
	if err := runStats(statsCmd, nil); err != nil {
		t.Errorf("package stats: %v", err)
	}

	statsPackage = ""
	statsFrom, statsTo = "2026-08-01", "2026-08-03"
	if err := runStats(statsCmd, nil); err != nil {
		t.Errorf("range stats: %v", err)
	}

	statsFrom, statsTo = "2026-08-01", ""
	if err := runStats(statsCmd, nil); err == nil {
		t.Error("expected an error when only --from is given")
	}
}
