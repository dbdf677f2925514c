package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvDisableThoughtLogging switches off the diagnostic thought boxes when
// set to "true" (any case).
const EnvDisableThoughtLogging = "DISABLE_THOUGHT_LOGGING"

// LoggingConfig holds diagnostic and operational logging settings.
type LoggingConfig struct {
	Disabled bool   `yaml:"disabled"`
	Level    string `yaml:"level"`
}

// ServerConfig holds MCP server identity settings.
type ServerConfig struct {
	Name     string `yaml:"name"`
	ToolName string `yaml:"tool_name"`
}

// Config holds thinkstate configuration.
type Config struct {
	Version string        `yaml:"version"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Version: "1",
		Logging: LoggingConfig{
			Disabled: false,
			Level:    "info",
		},
		Server: ServerConfig{
			Name:     "thinkstate",
			ToolName: "thinkstate",
		},
	}
}

// ApplyEnv lets the environment override file settings.
// DISABLE_THOUGHT_LOGGING only takes effect when set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvDisableThoughtLogging); v != "" {
		c.Logging.Disabled = strings.EqualFold(strings.TrimSpace(v), "true")
	}
}

// Store represents a loaded THINKSTATE_HOME.
type Store struct {
	Home   string
	Config Config
}

// Home returns the THINKSTATE_HOME path, respecting the THINKSTATE_HOME env var.
func Home() string {
	if h := os.Getenv("THINKSTATE_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".thinkstate")
	}
	return filepath.Join(home, ".thinkstate")
}

// Init creates the THINKSTATE_HOME directory with a default config.yaml.
func Init(home string, force bool) error {
	if _, err := os.Stat(home); err == nil && !force {
		return fmt.Errorf("THINKSTATE_HOME already exists at %s (use --force to reinitialize)", home)
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", home, err)
	}
	s := &Store{Home: home, Config: DefaultConfig()}
	return s.SaveConfig()
}

// Load reads THINKSTATE_HOME/config.yaml. A missing file yields defaults so
// the server can start without `thinkstate init`; missing fields are filled
// from defaults.
func Load(home string) (*Store, error) {
	cfg := DefaultConfig()
	cfgPath := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Store{Home: home, Config: cfg}, nil
		}
		return nil, fmt.Errorf("cannot read config at %s: %w", cfgPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config.yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config.yaml: %w", err)
	}
	return &Store{Home: home, Config: cfg}, nil
}

// Validate checks values that cannot be caught by YAML decoding alone.
func (c Config) Validate() error {
	if !validLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	if strings.TrimSpace(c.Server.ToolName) == "" {
		return fmt.Errorf("server.tool_name must not be empty")
	}
	if strings.TrimSpace(c.Server.Name) == "" {
		return fmt.Errorf("server.name must not be empty")
	}
	return nil
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// SaveConfig writes the current config to config.yaml.
func (s *Store) SaveConfig() error {
	data, err := yaml.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(s.Home, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.Home, err)
	}
	cfgPath := filepath.Join(s.Home, "config.yaml")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SetConfigValue sets a config value by dot-path key (e.g. "logging.level").
func (s *Store) SetConfigValue(key, value string) error {
	switch key {
	case "logging.disabled":
		switch strings.ToLower(value) {
		case "true":
			s.Config.Logging.Disabled = true
		case "false":
			s.Config.Logging.Disabled = false
		default:
			return fmt.Errorf("logging.disabled must be true or false")
		}
	case "logging.level":
		if !validLevel(value) {
			return fmt.Errorf("logging.level must be one of debug, info, warn, error")
		}
		s.Config.Logging.Level = value
	case "server.name":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("server.name must not be empty")
		}
		s.Config.Server.Name = value
	case "server.tool_name":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("server.tool_name must not be empty")
		}
		s.Config.Server.ToolName = value
	default:
		return fmt.Errorf("unknown config key: %s\nValid keys: logging.disabled, logging.level, server.name, server.tool_name", key)
	}
	return s.SaveConfig()
}
