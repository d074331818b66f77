// Package config loads server configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything cmd/server needs to start.
type Config struct {
	Listen    string        `yaml:"listen"`
	DBPath    string        `yaml:"dbPath"`
	JWTSecret string        `yaml:"jwtSecret"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
	Log       LogConfig     `yaml:"log"`
	RateLimit RateLimit     `yaml:"rateLimit"`
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text (tint) or json
}

// RateLimit configures the per-client request limiter.
// Zero values disable limiting.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the configuration used when no file or env vars are set.
func Default() Config {
	return Config{
		Listen:   ":8080",
		DBPath:   "./data/settlr.db",
		TokenTTL: 24 * time.Hour,
		Log:      LogConfig{Level: "info", Format: "text"},
		RateLimit: RateLimit{
			RPS:   20,
			Burst: 40,
		},
	}
}

// Load reads the YAML file at path (when it exists) over the defaults,
// then applies SETTLR_* environment overrides. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("jwtSecret is required (set SETTLR_JWT_SECRET or the config file)")
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SETTLR_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("SETTLR_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SETTLR_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SETTLR_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	if v := os.Getenv("SETTLR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SETTLR_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("SETTLR_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit.RPS = f
		}
	}
	if v := os.Getenv("SETTLR_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.Burst = n
		}
	}
}
