// Package config loads leap settings from .leap.yaml or leap.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File names searched for, in order, in each directory.
var FileNames = []string{".leap.yaml", ".leap.yml", "leap.toml"}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	defaultMaxSlots = 99
	maxMaxSlots     = 9999
	lockFileName    = "leap-format.lock"
)

// Config holds all user-tunable settings.
type Config struct {
	Backup BackupConfig `yaml:"backup" toml:"backup"`
	Format FormatConfig `yaml:"format" toml:"format"`
	Lock   LockConfig   `yaml:"lock" toml:"lock"`
	Output OutputConfig `yaml:"output" toml:"output"`
}

// BackupConfig bounds backup slot probing.
type BackupConfig struct {
	MaxSlots int `yaml:"max_slots" toml:"max_slots"`
}

// FormatConfig tunes the in-place rewrite.
type FormatConfig struct {
	// RestoreOnWriteError moves the backup back over the original path when
	// writing the formatted content fails.
	RestoreOnWriteError bool `yaml:"restore_on_write_error" toml:"restore_on_write_error"`
}

// LockConfig controls the advisory lock taken by in-place formatting.
type LockConfig struct {
	Path     string `yaml:"path" toml:"path"`
	Disabled bool   `yaml:"disabled" toml:"disabled"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Color string `yaml:"color" toml:"color"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backup: BackupConfig{MaxSlots: defaultMaxSlots},
		Output: OutputConfig{Color: ColorAuto},
	}
}

// LockPath returns the configured lock file, or one in the temp directory.
func (c Config) LockPath() string {
	if c.Lock.Path != "" {
		return c.Lock.Path
	}
	return filepath.Join(os.TempDir(), lockFileName)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Backup.MaxSlots < 1 || c.Backup.MaxSlots > maxMaxSlots {
		return fmt.Errorf("config: backup.max_slots must be between 1 and %d, got %d", maxMaxSlots, c.Backup.MaxSlots)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("config: output.color must be one of auto, always, never, got %q", c.Output.Color)
	}
	return nil
}

// Load reads the file at path. The format follows the extension: .toml is
// TOML, anything else YAML. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg, err := Parse(data, formatFor(path))
	if err != nil {
		return Config{}, fmt.Errorf("%w (in %s)", err, path)
	}
	return cfg, nil
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// Parse decodes data as "yaml" or "toml" over the defaults and validates
// the result. Unknown keys are rejected.
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()

	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	case "toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config: unknown key %q", undecoded[0].String())
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
