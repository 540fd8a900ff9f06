// Package config layers sca settings from defaults, an sca.yaml file,
// SCA_ environment variables and command line flags.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/schyrsivochter/soundchange/internal/engine"
	"github.com/schyrsivochter/soundchange/internal/pipeline"
)

// File names searched in the working directory when no file is given.
const (
	ConfigFileName    = "sca.yaml"
	ConfigFileNameAlt = "sca.yml"
)

// EnvPrefix is the prefix of environment overrides: SCA_OUT_FORMAT=1.
const EnvPrefix = "SCA_"

// Default values.
const (
	DefaultDatabase = "sca-history.db"
	DefaultFormat   = "text"
)

// Config is the resolved configuration.
type Config struct {
	OutFormat     int    `koanf:"out_format"`
	Template      string `koanf:"template"`
	RewriteOutput bool   `koanf:"rewrite_output"`
	Workers       int    `koanf:"workers"`
	MaxScanFactor int    `koanf:"max_scan_factor"`
	Normalize     bool   `koanf:"normalize"`
	Database      string `koanf:"database"`
	Verbose       bool   `koanf:"verbose"`
	Format        string `koanf:"format"`

	// FileUsed is the config file that was loaded, if any.
	FileUsed string `koanf:"-"`
}

// flagKeys maps flag names that differ from their config keys.
var flagKeys = map[string]string{
	"db": "database",
}

func defaults() map[string]any {
	return map[string]any{
		"out_format":      pipeline.FormatOutput,
		"template":        "",
		"rewrite_output":  false,
		"workers":         runtime.GOMAXPROCS(0),
		"max_scan_factor": engine.DefaultMaxScanFactor,
		"normalize":       true,
		"database":        DefaultDatabase,
		"verbose":         false,
		"format":          DefaultFormat,
	}
}

// Load resolves configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
//
// cfgFile may be empty, in which case sca.yaml or sca.yml in the working
// directory is used when present. flags may be nil; only flags the user
// actually set take part.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: SCA_MAX_SCAN_FACTOR -> max_scan_factor
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns explicit if set, else the first default file
// present in the working directory, else "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Template == "" {
		if _, err := pipeline.PresetTemplate(c.OutFormat); err != nil {
			return fmt.Errorf("invalid out_format: %w", err)
		}
	} else if _, err := pipeline.ParseTemplate(c.Template); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers %d: must not be negative", c.Workers)
	}
	if c.MaxScanFactor < 1 {
		return fmt.Errorf("invalid max_scan_factor %d: must be at least 1", c.MaxScanFactor)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q: must be text or json", c.Format)
	}
	return nil
}

// PipelineOptions converts the batch-related settings.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		OutFormat:     c.OutFormat,
		Template:      c.Template,
		RewriteOutput: c.RewriteOutput,
		Workers:       c.Workers,
		Normalize:     c.Normalize,
		MaxScanFactor: c.MaxScanFactor,
	}
}
