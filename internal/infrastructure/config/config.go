package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full campuscore configuration tree, one struct per
// config.yaml section.
type Config struct {
	Org      OrgConfig      `yaml:"org"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// OrgConfig identifies the school organization this instance serves.
type OrgConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// DatabaseConfig feeds database.Open.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig feeds logging.New.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads the YAML file at path and returns the validated
// configuration. Built-in defaults are applied first, the file overrides
// them, and CAMPUSCORE_* environment variables (CAMPUSCORE_DATABASE_PATH,
// CAMPUSCORE_LOGGING_LEVEL, ...) override both.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig is the baseline a bare deployment runs with.
func defaultConfig() *Config {
	return &Config{
		Org: OrgConfig{
			ID:       "org-001",
			Name:     "campuscore",
			Timezone: "UTC",
		},
		Database: DatabaseConfig{
			Path:        "./data/campuscore.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides lets container deployments steer the important knobs
// without mounting a config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CAMPUSCORE_ORG_ID"); v != "" {
		cfg.Org.ID = v
	}
	if v := os.Getenv("CAMPUSCORE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("CAMPUSCORE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CAMPUSCORE_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate collects every problem with the configuration into a single
// error so the operator can fix them in one pass.
func (c *Config) Validate() error {
	var errs []string

	if c.Org.ID == "" {
		errs = append(errs, "org.id is required")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.Database.BusyTimeout < 0 {
		errs = append(errs, "database.busy_timeout must not be negative")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		errs = append(errs, "logging.level must be one of: debug, info, warn, error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
