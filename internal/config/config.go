// Package config loads the VentureCompass service configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1234bibhash/venture-idea-compass/internal/businessplan"
)

type Config struct {
	Addr          string          `yaml:"addr"`
	WebDir        string          `yaml:"web_dir"`
	StateFile     string          `yaml:"state_file"`
	AnalysisDelay time.Duration   `yaml:"analysis_delay"`
	FreeIdeaLimit int             `yaml:"free_idea_limit"`
	Store         StoreConfig     `yaml:"store"`
	Log           LogConfig       `yaml:"log"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
	Telemetry     TelemetryConfig `yaml:"telemetry"`
	PDF           PDFConfig       `yaml:"pdf"`
}

// StoreConfig selects the key-value and history backend.
// Driver is "memory", "sqlite" or "postgres".
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// RateLimitConfig bounds idea submissions per minute across all users.
// RPM <= 0 disables the limiter.
type RateLimitConfig struct {
	RPM   int `yaml:"rpm"`
	Burst int `yaml:"burst"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// PDFConfig controls plan downloads as PDF. PageSize is A4, Letter or Legal;
// MarginInches applies to every edge.
type PDFConfig struct {
	Enabled      bool    `yaml:"enabled"`
	ChromePath   string  `yaml:"chrome_path"`
	PageSize     string  `yaml:"page_size"`
	MarginInches float64 `yaml:"margin_in"`
}

func (p PDFConfig) Layout() (businessplan.PageLayout, error) {
	return businessplan.PageLayoutFor(p.PageSize, p.MarginInches)
}

func Default() Config {
	return Config{
		Addr:          ":8080",
		WebDir:        "web",
		StateFile:     "",
		AnalysisDelay: time.Second,
		FreeIdeaLimit: 2,
		Store:         StoreConfig{Driver: "sqlite", DSN: "venturecompass.db"},
		Log:           LogConfig{Level: "info"},
		RateLimit:     RateLimitConfig{RPM: 60, Burst: 10},
		Telemetry:     TelemetryConfig{ServiceName: "venturecompass"},
		PDF:           PDFConfig{Enabled: true, PageSize: "A4", MarginInches: 0.5},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path yields the defaults plus overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("VENTURECOMPASS_ADDR")); v != "" {
		c.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("VENTURECOMPASS_STORE_DRIVER")); v != "" {
		c.Store.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv("VENTURECOMPASS_STORE_DSN")); v != "" {
		c.Store.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("VENTURECOMPASS_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("VENTURECOMPASS_PDF_PAGE_SIZE")); v != "" {
		c.PDF.PageSize = v
	}
	if v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); v != "" {
		c.Telemetry.Endpoint = v
		c.Telemetry.Enabled = true
	}
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	switch c.Store.Driver {
	case "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(c.Store.DSN) == "" {
			errs = append(errs, fmt.Errorf("store.dsn is required for driver %q", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported store.driver %q", c.Store.Driver))
	}
	if c.AnalysisDelay < 0 {
		errs = append(errs, errors.New("analysis_delay must not be negative"))
	}
	if c.FreeIdeaLimit < 1 {
		errs = append(errs, errors.New("free_idea_limit must be at least 1"))
	}
	if c.RateLimit.RPM > 0 && c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("rate_limit.burst must be at least 1 when rpm is set"))
	}
	if c.Telemetry.Enabled && strings.TrimSpace(c.Telemetry.Endpoint) == "" {
		errs = append(errs, errors.New("telemetry.endpoint is required when telemetry is enabled"))
	}
	if _, err := c.PDF.Layout(); err != nil {
		errs = append(errs, fmt.Errorf("pdf: %w", err))
	}
	return errors.Join(errs...)
}
