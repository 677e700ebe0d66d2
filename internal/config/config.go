// Package config loads the oath CLI configuration from an optional YAML or
// TOML file, then applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"tennisoath/internal/storage"
)

type Config struct {
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	Board   BoardConfig   `yaml:"board" toml:"board"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// StorageConfig selects the key-value backend. An empty Path resolves to a
// file in the home directory.
type StorageConfig struct {
	Engine string `yaml:"engine" toml:"engine" env:"OATH_STORAGE_ENGINE"`
	Path   string `yaml:"path" toml:"path" env:"OATH_DB"`
}

type BoardConfig struct {
	// ResetDelay is how long the board keeps a signed checklist on screen
	// before clearing it.
	ResetDelay time.Duration `yaml:"reset_delay" toml:"reset_delay" env:"OATH_RESET_DELAY"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" env:"OATH_LOG_LEVEL"`
	Format string `yaml:"format" toml:"format" env:"OATH_LOG_FORMAT"`
}

func Default() *Config {
	return &Config{
		Storage: StorageConfig{Engine: storage.EngineSQLite},
		Board:   BoardConfig{ResetDelay: 2 * time.Second},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tennis-oath/config.yaml (or the
// platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tennis-oath", "config.yaml")
}

// Load reads the config file at path, decoding TOML for a .toml extension and
// YAML otherwise. A missing file is only an error when mustExist is set.
// Environment variables override file values.
func Load(path string, mustExist bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !mustExist:
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := decode(path, expandEnvVars(string(data)), cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data string, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(data, cfg)
		return err
	}
	return yaml.Unmarshal([]byte(data), cfg)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(name)
	})
}

func (c *Config) Validate() error {
	c.Storage.Engine = strings.ToLower(strings.TrimSpace(c.Storage.Engine))
	switch c.Storage.Engine {
	case "":
		c.Storage.Engine = storage.EngineSQLite
	case storage.EngineSQLite, storage.EngineJSON:
	default:
		return fmt.Errorf("storage.engine must be %q or %q, got %q", storage.EngineSQLite, storage.EngineJSON, c.Storage.Engine)
	}
	if c.Board.ResetDelay < 0 {
		return fmt.Errorf("board.reset_delay must not be negative")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}
	return nil
}

// ResolveDBPath returns the configured storage path or the engine default.
func (c *Config) ResolveDBPath() (string, error) {
	if p := strings.TrimSpace(c.Storage.Path); p != "" {
		if strings.HasPrefix(p, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("get home dir: %w", err)
			}
			p = filepath.Join(home, p[2:])
		}
		return p, nil
	}
	return storage.DefaultDBPath(c.Storage.Engine)
}
