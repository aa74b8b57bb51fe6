package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/repcoin/repcoin/internal/engine"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Engine    EngineConfig    `yaml:"engine"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// EngineConfig carries optional per-exercise tuning overrides for live
// tracking sessions. Zero fields keep the engine's built-in profile.
type EngineConfig struct {
	Pushup ExerciseTuning `yaml:"pushup"`
	Situp  ExerciseTuning `yaml:"situp"`
}

type ExerciseTuning struct {
	Alpha              float64 `yaml:"alpha"`
	Threshold          float64 `yaml:"threshold"`
	MinRepIntervalMS   int     `yaml:"min_rep_interval_ms"`
	CalibrationSamples int     `yaml:"calibration_samples"`
}

// For builds an engine session config for the given exercise, applying any
// configured overrides on top of the engine defaults.
func (e EngineConfig) For(kind engine.Kind, source engine.SourceKind) engine.Config {
	t := e.Pushup
	if kind == engine.KindSitup {
		t = e.Situp
	}
	return engine.Config{
		Kind:               kind,
		Source:             source,
		Alpha:              t.Alpha,
		Threshold:          t.Threshold,
		MinRepInterval:     time.Duration(t.MinRepIntervalMS) * time.Millisecond,
		CalibrationSamples: t.CalibrationSamples,
	}
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix REPCOIN_ and underscore-separated paths:
//
//	REPCOIN_SERVER_HOST, REPCOIN_SERVER_PORT,
//	REPCOIN_DB_HOST, REPCOIN_DB_PORT, REPCOIN_DB_NAME,
//	REPCOIN_DB_USER, REPCOIN_DB_PASSWORD, REPCOIN_DB_SSLMODE,
//	REPCOIN_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPCOIN_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REPCOIN_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REPCOIN_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("REPCOIN_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("REPCOIN_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REPCOIN_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("REPCOIN_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REPCOIN_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("REPCOIN_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	for _, t := range []ExerciseTuning{c.Engine.Pushup, c.Engine.Situp} {
		if t.Alpha < 0 || t.Alpha >= 1 {
			return fmt.Errorf("engine alpha %v outside [0,1)", t.Alpha)
		}
		if t.Threshold < 0 {
			return fmt.Errorf("engine threshold %v is negative", t.Threshold)
		}
	}
	return nil
}
