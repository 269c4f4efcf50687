// Package config loads biolink server settings from an optional YAML file
// and the environment. Environment variables win over the file.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	File  string `yaml:"file"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port              string `yaml:"port"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// DatabaseConfig holds the store location.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// AdminConfig holds the shared admin secret and session lifetime.
type AdminConfig struct {
	Password   string        `yaml:"password"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Config mirrors the biolink.yaml schema.
type Config struct {
	Env      string         `yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Admin    AdminConfig    `yaml:"admin"`
	Log      LogConfig      `yaml:"log"`
}

// Production reports whether cookies should be restricted to HTTPS.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads path (when non-empty), applies environment overrides and
// defaults, and validates the result.
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&c, os.LookupEnv)
	applyDefaults(&c)
	if err := validate(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyEnv(c *Config, lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("APP_ENV", &c.Env)
	set("PORT", &c.HTTP.Port)
	set("DATABASE_URL", &c.Database.URL)
	set("LOG_LEVEL", &c.Log.Level)
	set("LOG_FILE", &c.Log.File)

	// The password is compared verbatim, so it is not trimmed.
	if v, ok := lookup("ADMIN_PASSWORD"); ok && v != "" {
		c.Admin.Password = v
	}
}

// applyDefaults populates zero-values with sane defaults.
func applyDefaults(c *Config) {
	if c.Env == "" {
		c.Env = EnvDevelopment
	}
	if c.HTTP.Port == "" {
		c.HTTP.Port = "8080"
	}
	if c.HTTP.RequestsPerMinute == 0 {
		c.HTTP.RequestsPerMinute = 500
	}
	if c.Database.URL == "" {
		c.Database.URL = "postgres://localhost:5432/biolink?sslmode=disable"
	}
	if c.Admin.SessionTTL == 0 {
		c.Admin.SessionTTL = 7 * 24 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func validate(c *Config) error {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return errors.New("env must be development or production")
	}
	port, err := strconv.Atoi(c.HTTP.Port)
	if err != nil || port <= 0 || port > 65535 {
		return errors.New("http.port is invalid")
	}
	if c.HTTP.RequestsPerMinute < 0 {
		return errors.New("http.requests_per_minute is invalid")
	}
	if c.Admin.SessionTTL < time.Minute {
		return errors.New("admin.session_ttl must be at least 1m")
	}
	return nil
}
