// Package config loads tool configuration from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the CLI commands and the REPL.
type Config struct {
	// Precision is the number of significant digits printed for numeric
	// results.
	Precision int `toml:"precision" yaml:"precision"`
	// Rectangles is the default rectangle count for Riemann-sum
	// integration. Zero selects the symbolic path.
	Rectangles int `toml:"rectangles" yaml:"rectangles"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// LogFormat is either text or json.
	LogFormat string `toml:"log_format" yaml:"log_format"`
	// Prompt is the REPL input prompt.
	Prompt string `toml:"prompt" yaml:"prompt"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Precision:  6,
		Rectangles: 0,
		LogLevel:   "info",
		LogFormat:  "text",
		Prompt:     "calcium> ",
	}
}

// Load reads a config file, chosen by extension (.toml, .yaml or .yml),
// over the defaults. Fields absent from the file keep their default
// values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Precision < 1 || c.Precision > 17 {
		return fmt.Errorf("precision must be between 1 and 17, got %d", c.Precision)
	}
	if c.Rectangles < 0 {
		return fmt.Errorf("rectangles must be non-negative, got %d", c.Rectangles)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
