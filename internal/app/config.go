package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"github.com/specialistvlad/rulesmith/internal/publish"
	"gopkg.in/yaml.v3"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// RulesPaths are rule files or directories of rule files.
	RulesPaths []string `yaml:"rules"`

	LogFormat string `yaml:"log_format"`
	LogLevel  string `yaml:"log_level"`
	// Workers bounds concurrent decoding and resolution.
	Workers int `yaml:"workers"`
	// Output is the report format: "text", "json" or "none".
	Output string `yaml:"output"`

	Publish publish.Config `yaml:"publish"`
}

// DefaultConfig returns the configuration used when neither a config file
// nor a flag sets a value.
func DefaultConfig() Config {
	return Config{
		LogFormat: "text",
		LogLevel:  "info",
		Workers:   runtime.GOMAXPROCS(0),
		Output:    "text",
		Publish: publish.Config{
			Event:   "rules",
			Timeout: publish.DefaultTimeout,
		},
	}
}

// LoadConfigFile overlays the YAML file at path on cfg. A missing file
// leaves cfg unchanged.
func LoadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return ReadConfigFile(path, cfg)
}

// ReadConfigFile overlays the YAML file at path on cfg. The file must exist.
func ReadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// NewConfig validates cfg and returns a normalized copy.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.RulesPaths) == 0 {
		return nil, errors.New("at least one rules path is required")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if _, err := ctxlog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	cfg.Output = strings.ToLower(cfg.Output)
	switch cfg.Output {
	case "text", "json", "none":
	default:
		return nil, errors.New("invalid output: must be 'text', 'json' or 'none'")
	}
	if cfg.Workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	if err := cfg.Publish.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
