// Package config loads droidusage settings from an optional YAML file.
// Precedence is flags over file values over built-in defaults; the
// resolution of flags happens in the CLI layer, this package only merges
// file over defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "45s" parse naturally.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the plain time.Duration value.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the settings for the collector and store.
type Config struct {
	// DataDir holds the primary usage document.
	DataDir string `yaml:"data_dir"`
	// MirrorDir receives the dashboard copy of the document.
	MirrorDir string `yaml:"mirror_dir"`
	// ADBPath is the adb binary; empty resolves "adb" via PATH.
	ADBPath string `yaml:"adb_path"`
	// ProbeTimeout bounds liveness checks and device enumeration.
	ProbeTimeout Duration `yaml:"probe_timeout"`
	// CommandTimeout bounds data-retrieval shell commands.
	CommandTimeout Duration `yaml:"command_timeout"`
	// TopApps is how many apps the collection summary lists.
	TopApps int `yaml:"top_apps"`
}

// Default returns the built-in configuration rooted at ~/.droidusage.
func Default() Config {
	base := ".droidusage"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".droidusage")
	}
	return Config{
		DataDir:        filepath.Join(base, "data"),
		MirrorDir:      filepath.Join(base, "dashboard"),
		ADBPath:        "adb",
		ProbeTimeout:   Duration(5 * time.Second),
		CommandTimeout: Duration(30 * time.Second),
		TopApps:        5,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".droidusage", "config.yaml")
}

// Load reads the config file at path, overlaying it on the defaults. An
// empty path means the default location, and a missing file is not an
// error — the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.TopApps <= 0 {
		cfg.TopApps = 5
	}
	return cfg, nil
}
