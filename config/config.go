/*
config.go - YAML configuration for the server binary

PURPOSE:
  Loads the server's YAML configuration file, applies defaults and
  rejects values the server cannot run with. Everything the binary can
  tune lives here; the engine itself takes no configuration.

FILE SHAPE:
  server:
    listen_addr: ":8080"
    allowed_origins: ["http://localhost:5173"]
    shutdown_timeout: "10s"
  reports:
    output_dir: "./reports"

SEE ALSO:
  - cmd/server/main.go: flag handling and startup
*/
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Reports ReportsConfig `yaml:"reports"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	ListenAddr         string        `yaml:"listen_addr"`
	AllowedOrigins     []string      `yaml:"allowed_origins"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout"`
}

// ReportsConfig configures where run reports and payslips land.
type ReportsConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Reports.OutputDir == "" {
		c.Reports.OutputDir = "."
	}
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ShutdownTimeoutRaw != "" {
		d, err := time.ParseDuration(c.Server.ShutdownTimeoutRaw)
		if err != nil {
			return fmt.Errorf("config: parse server.shutdown_timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config: server.shutdown_timeout must be positive")
		}
		c.Server.ShutdownTimeout = d
	}

	c.applyDefaults()
	return nil
}
