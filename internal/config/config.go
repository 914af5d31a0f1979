package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	minSecretKeyLength = 32

	// MetricsDisabled as METRICS_PATH turns the Prometheus endpoint off.
	MetricsDisabled = "off"
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var defaultDevOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

type Config struct {
	SecretKey       string   `yaml:"secret_key"`
	Port            string   `yaml:"port"`
	DBPath          string   `yaml:"db_path"`
	DatabaseURL     string   `yaml:"database_url"`
	Env             string   `yaml:"env"`
	CORSOrigins     []string `yaml:"cors_origins"`
	StaticDir       string   `yaml:"static_dir"`
	Timezone        string   `yaml:"timezone"`
	DefaultLanguage string   `yaml:"default_language"`
	LogLevel        string   `yaml:"log_level"`
	LogFile         string   `yaml:"log_file"`
	MetricsPath     string   `yaml:"metrics_path"`
}

func Default() *Config {
	return &Config{
		Port:            "8080",
		DBPath:          filepath.Join("data", "grimoire.db"),
		Env:             EnvDevelopment,
		StaticDir:       filepath.Join("client", "dist"),
		Timezone:        "UTC",
		DefaultLanguage: "pt",
		LogLevel:        "info",
		MetricsPath:     "/metrics",
	}
}

// Load reads path (when non-empty) over the defaults and then applies
// environment overrides. A missing file is an error only when path was given.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	overrideString(&c.SecretKey, "SECRET_KEY")
	overrideString(&c.Port, "PORT")
	overrideString(&c.DBPath, "DB_PATH")
	overrideString(&c.DatabaseURL, "DATABASE_URL")
	overrideString(&c.Env, "APP_ENV")
	overrideString(&c.StaticDir, "STATIC_DIR")
	overrideString(&c.Timezone, "TZ")
	overrideString(&c.DefaultLanguage, "DEFAULT_LANGUAGE")
	overrideString(&c.LogLevel, "LOG_LEVEL")
	overrideString(&c.LogFile, "LOG_FILE")
	overrideString(&c.MetricsPath, "METRICS_PATH")

	if raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); raw != "" {
		origins := make([]string, 0)
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		c.CORSOrigins = origins
	}
}

func overrideString(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

func (c *Config) Validate() error {
	var errs []error

	secret := strings.TrimSpace(c.SecretKey)
	switch {
	case secret == "":
		errs = append(errs, errors.New("SECRET_KEY is required"))
	case isInsecureSecret(secret):
		errs = append(errs, errors.New("SECRET_KEY uses an insecure placeholder"))
	case len(secret) < minSecretKeyLength:
		errs = append(errs, fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength))
	}

	if _, err := c.PortNumber(); err != nil {
		errs = append(errs, err)
	}

	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env))
	}

	if strings.TrimSpace(c.DatabaseURL) == "" && strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH or DATABASE_URL is required"))
	}

	if c.MetricsEnabled() && (!strings.HasPrefix(c.MetricsPath, "/") || strings.HasPrefix(c.MetricsPath, "/api")) {
		errs = append(errs, fmt.Errorf("METRICS_PATH must be an absolute path outside /api or %q, got %q", MetricsDisabled, c.MetricsPath))
	}

	return errors.Join(errs...)
}

func isInsecureSecret(secret string) bool {
	_, found := insecureSecretKeys[strings.ToLower(secret)]
	return found
}

// PortNumber parses Port and checks it is a TCP port.
func (c *Config) PortNumber() (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	return port, nil
}

func (c *Config) MetricsEnabled() bool {
	path := strings.TrimSpace(c.MetricsPath)
	return path != "" && path != MetricsDisabled
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// AllowedOrigins is the CORS allowlist. Production serves the client from the
// same origin and allows none unless configured.
func (c *Config) AllowedOrigins() []string {
	if len(c.CORSOrigins) > 0 {
		return c.CORSOrigins
	}
	if c.IsProduction() {
		return nil
	}
	return append([]string(nil), defaultDevOrigins...)
}

// Location resolves Timezone, falling back to UTC for unknown names.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid TZ %q: %w", name, err)
	}
	return location, nil
}
