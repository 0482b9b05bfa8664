package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "venturecompass.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"VENTURECOMPASS_ADDR", "VENTURECOMPASS_STORE_DRIVER", "VENTURECOMPASS_STORE_DSN",
		"VENTURECOMPASS_LOG_LEVEL", "VENTURECOMPASS_PDF_PAGE_SIZE", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, time.Second, cfg.AnalysisDelay)
	assert.Equal(t, 2, cfg.FreeIdeaLimit)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
analysis_delay: 250ms
free_idea_limit: 5
store:
  driver: memory
log:
  level: debug
  file: logs/app.log
rate_limit:
  rpm: 0
pdf:
  enabled: false
  page_size: Letter
  margin_in: 0.75
`)
	clearEnv(t)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.AnalysisDelay)
	assert.Equal(t, 5, cfg.FreeIdeaLimit)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logs/app.log", cfg.Log.File)
	assert.False(t, cfg.PDF.Enabled)
	layout, err := cfg.PDF.Layout()
	require.NoError(t, err)
	assert.Equal(t, 8.5, layout.Width)
	assert.Equal(t, 0.75, layout.MarginLeft)
	// Untouched keys keep their defaults.
	assert.Equal(t, "web", cfg.WebDir)
	assert.Equal(t, "venturecompass", cfg.Telemetry.ServiceName)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := writeConfig(t, "addr: \":9090\"\nstore:\n  driver: memory\n")
	t.Setenv("VENTURECOMPASS_ADDR", ":7070")
	t.Setenv("VENTURECOMPASS_STORE_DRIVER", "postgres")
	t.Setenv("VENTURECOMPASS_STORE_DSN", "postgres://vc@localhost/vc?sslmode=disable")
	t.Setenv("VENTURECOMPASS_LOG_LEVEL", "warn")
	t.Setenv("VENTURECOMPASS_PDF_PAGE_SIZE", "legal")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://vc@localhost/vc?sslmode=disable", cfg.Store.DSN)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4318", cfg.Telemetry.Endpoint)
	assert.Equal(t, "legal", cfg.PDF.PageSize)
}

func TestDefaultPDFLayoutIsA4(t *testing.T) {
	layout, err := Default().PDF.Layout()
	require.NoError(t, err)
	assert.Equal(t, 8.27, layout.Width)
	assert.Equal(t, 11.69, layout.Height)
	assert.Equal(t, 0.5, layout.MarginTop)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "addr: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "mongo" }, `unsupported store.driver "mongo"`},
		{"missing dsn", func(c *Config) { c.Store.DSN = "" }, "store.dsn is required"},
		{"negative delay", func(c *Config) { c.AnalysisDelay = -time.Second }, "analysis_delay"},
		{"zero limit", func(c *Config) { c.FreeIdeaLimit = 0 }, "free_idea_limit"},
		{"burst", func(c *Config) { c.RateLimit.Burst = 0 }, "rate_limit.burst"},
		{"telemetry endpoint", func(c *Config) { c.Telemetry.Enabled = true }, "telemetry.endpoint"},
		{"empty addr", func(c *Config) { c.Addr = " " }, "addr is required"},
		{"page size", func(c *Config) { c.PDF.PageSize = "tabloid" }, `pdf: unknown page size "tabloid"`},
		{"margin", func(c *Config) { c.PDF.MarginInches = -1 }, "pdf: margin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	mem := Default()
	mem.Store = StoreConfig{Driver: "memory"}
	assert.NoError(t, mem.Validate())
}
