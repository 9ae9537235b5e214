// Package config loads configuration from defaults, a YAML file, .env and
// environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user config and data directory
const AppName = "chroninotes"

// Config holds all ChroniNotes configuration.
type Config struct {
	// Storage
	Root     string `yaml:"root"`     // notes root directory
	Database string `yaml:"database"` // settings database file

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"` // stdout, stderr, or file path

	// Metrics (MCP server only; empty disables the endpoint)
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the built-in configuration
func Default() (*Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate user config dir: %w", err)
	}
	dataDir := filepath.Join(base, AppName)

	return &Config{
		Root:      filepath.Join(dataDir, "ChroniNotes"),
		Database:  filepath.Join(dataDir, AppName+".db"),
		LogLevel:  "warn",
		LogFormat: "console",
		LogOutput: "stderr",
	}, nil
}

// Load builds the effective configuration.
// A .env file in the working directory is applied first without overriding
// variables that are already set, so it can also point at the config file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	if err := cfg.MergeFile(path); err != nil {
		return nil, err
	}

	cfg.MergeEnv()
	cfg.Expand()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FilePath returns $CHRONINOTES_CONFIG or the per-user config.yaml
func FilePath() (string, error) {
	if env := os.Getenv("CHRONINOTES_CONFIG"); env != "" {
		return expandHome(env), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, AppName, "config.yaml"), nil
}

// MergeFile overlays the non-empty values of a YAML file.
// A missing file is not an error.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.overlay(file)
	return nil
}

// MergeEnv overlays CHRONINOTES_* environment variables
func (c *Config) MergeEnv() {
	c.overlay(Config{
		Root:        os.Getenv("CHRONINOTES_ROOT"),
		Database:    os.Getenv("CHRONINOTES_DB"),
		LogLevel:    os.Getenv("CHRONINOTES_LOG_LEVEL"),
		LogFormat:   os.Getenv("CHRONINOTES_LOG_FORMAT"),
		LogOutput:   os.Getenv("CHRONINOTES_LOG_OUTPUT"),
		MetricsAddr: os.Getenv("CHRONINOTES_METRICS_ADDR"),
	})
}

// Expand resolves a leading ~ in path settings
func (c *Config) Expand() {
	c.Root = expandHome(c.Root)
	c.Database = expandHome(c.Database)
	if c.LogOutput != "stdout" && c.LogOutput != "stderr" {
		c.LogOutput = expandHome(c.LogOutput)
	}
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("notes root is required")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q (expected json or console)", c.LogFormat)
	}
	return nil
}

// LogsToTerminal reports whether log output shares the terminal
func (c *Config) LogsToTerminal() bool {
	return c.LogOutput == "" || c.LogOutput == "stdout" || c.LogOutput == "stderr"
}

func (c *Config) overlay(o Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Root, o.Root)
	set(&c.Database, o.Database)
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFormat, o.LogFormat)
	set(&c.LogOutput, o.LogOutput)
	set(&c.MetricsAddr, o.MetricsAddr)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
