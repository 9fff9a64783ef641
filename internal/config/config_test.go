package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}

	def := Default()
	if cfg.ADBPath != def.ADBPath || cfg.TopApps != def.TopApps {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, def)
	}
	if cfg.ProbeTimeout.Std() != 5*time.Second {
		t.Errorf("probe timeout = %v, want 5s", cfg.ProbeTimeout.Std())
	}
	if cfg.CommandTimeout.Std() != 30*time.Second {
		t.Errorf("command timeout = %v, want 30s", cfg.CommandTimeout.Std())
	}
}

func TestLoadOverlaysFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `data_dir: /srv/usage/data
mirror_dir: /srv/usage/dashboard
adb_path: /opt/platform-tools/adb
probe_timeout: 10s
command_timeout: 2m
top_apps: 8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "/srv/usage/data" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	if cfg.MirrorDir != "/srv/usage/dashboard" {
		t.Errorf("mirror_dir = %q", cfg.MirrorDir)
	}
	if cfg.ADBPath != "/opt/platform-tools/adb" {
		t.Errorf("adb_path = %q", cfg.ADBPath)
	}
	if cfg.ProbeTimeout.Std() != 10*time.Second {
		t.Errorf("probe_timeout = %v", cfg.ProbeTimeout.Std())
	}
	if cfg.CommandTimeout.Std() != 2*time.Minute {
		t.Errorf("command_timeout = %v", cfg.CommandTimeout.Std())
	}
	if cfg.TopApps != 8 {
		t.Errorf("top_apps = %d", cfg.TopApps)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("top_apps: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TopApps != 3 {
		t.Errorf("top_apps = %d, want 3", cfg.TopApps)
	}
	if cfg.ADBPath != "adb" {
		t.Errorf("adb_path = %q, want default", cfg.ADBPath)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("probe_timeout: soonish\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unparsable duration")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}
