// Package config loads evaluator configuration from a YAML file with
// environment variable overrides for deployment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "30s" parse naturally.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config describes everything the evaluator needs at startup.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Agent   AgentConfig   `yaml:"agent"`
	Runner  RunnerConfig  `yaml:"runner"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig controls the evaluator's own HTTP listener.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// AgentConfig points at the agent under test.
type AgentConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

// RunnerConfig bounds a single evaluation session.
type RunnerConfig struct {
	MaxTurns int `yaml:"max_turns"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()

	return cfg
}

// Load parses a YAML configuration file and fills in defaults for anything
// the file leaves unset. Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8686"
	}

	if c.Agent.URL == "" {
		c.Agent.URL = "http://localhost:8585"
	}

	if c.Agent.Timeout == 0 {
		c.Agent.Timeout = Duration(30 * time.Second)
	}

	if c.Runner.MaxTurns == 0 {
		c.Runner.MaxTurns = 20
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GREEN_AGENT_LISTEN"); v != "" {
		c.Server.Listen = v
	}

	if v := os.Getenv("WHITE_AGENT_URL"); v != "" {
		c.Agent.URL = v
	}

	if v := os.Getenv("GREEN_AGENT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
