package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finmerge/finmerge/internal/merge"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "finmerge.yaml"

// Config holds the paths and behavior of a merge run.
type Config struct {
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`
	OnBadRow   string `yaml:"on_bad_row"` // a merge.Policy name
	LogLevel   string `yaml:"log_level"`
	RunLog     string `yaml:"run_log,omitempty"` // optional CSV run history
}

// Change reports what LoadOrCreate did to the file on disk.
type Change int

const (
	ChangeNone Change = iota
	ChangeCreated
	ChangeUpdated
)

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		InputPath:  "./input",
		OutputPath: "./output.csv",
		OnBadRow:   string(merge.PolicySkipFile),
		LogLevel:   "info",
	}
}

// Load reads a config file from disk. JSON files load too.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadOrCreate loads path, writing defaults when the file is missing and
// filling in (and persisting) any missing settings. A file that does not
// parse is treated as empty.
func LoadOrCreate(path string) (*Config, Change, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return nil, ChangeNone, err
		}
		return cfg, ChangeCreated, nil
	}

	cfg, err := Load(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, ChangeNone, err
		}
		cfg = &Config{}
	}

	if !cfg.fillDefaults() {
		return cfg, ChangeNone, nil
	}
	if err := Save(path, cfg); err != nil {
		return nil, ChangeNone, err
	}
	return cfg, ChangeUpdated, nil
}

// fillDefaults sets empty fields from Default and reports whether any changed.
func (c *Config) fillDefaults() bool {
	def := Default()
	updated := false
	for _, f := range []struct {
		val *string
		def string
	}{
		{&c.InputPath, def.InputPath},
		{&c.OutputPath, def.OutputPath},
		{&c.OnBadRow, def.OnBadRow},
		{&c.LogLevel, def.LogLevel},
	} {
		if *f.val == "" {
			*f.val = f.def
			updated = true
		}
	}
	return updated
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input_path is empty")
	}
	if c.OutputPath == "" {
		return errors.New("output_path is empty")
	}
	if _, err := merge.ParsePolicy(c.OnBadRow); err != nil {
		return fmt.Errorf("on_bad_row: %w", err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	return nil
}
