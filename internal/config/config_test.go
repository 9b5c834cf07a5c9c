package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lcerrors "git.home.luguber.info/inful/linkcheck/internal/errors"
)

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// isolate runs the test from an empty directory so no stray .env files are picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testChdir(t, dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "linkcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "inline", cfg.Syntax)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Empty(t, cfg.Metrics.File)
	assert.False(t, cfg.Events.Enabled())
	assert.Equal(t, "linkcheck.broken", cfg.Events.Subject)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	t.Setenv("DOCS_NATS", "nats://127.0.0.1:4222")
	path := writeConfig(t, dir, `
format: JSON
syntax: commonmark
logging:
  level: debug
  format: json
metrics:
  file: /tmp/linkcheck.prom
events:
  nats_url: ${DOCS_NATS}
  timeout: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "commonmark", cfg.Syntax)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "/tmp/linkcheck.prom", cfg.Metrics.File)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Events.NATSURL)
	assert.Equal(t, "linkcheck.broken", cfg.Events.Subject, "unset keys keep their defaults")

	timeout, err := cfg.EventTimeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, timeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "format: text\nsyntax: inline\n")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvSyntax, "goldmark")
	t.Setenv(EnvLogLevel, "info")
	t.Setenv(EnvMetricsFile, "out.prom")
	t.Setenv(EnvNATSSubject, "docs.links")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "commonmark", cfg.Syntax)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, "out.prom", cfg.Metrics.File)
	assert.Equal(t, "docs.links", cfg.Events.Subject)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LINKCHECK_FORMAT=json\n"), 0o600))
	t.Setenv(EnvFormat, "")
	require.NoError(t, os.Unsetenv(EnvFormat))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.True(t, lcerrors.IsCategory(err, lcerrors.CategoryConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "format: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, lcerrors.IsCategory(err, lcerrors.CategoryConfig))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"format", func(c *Config) { c.Format = "xml" }, "format"},
		{"syntax", func(c *Config) { c.Syntax = "wiki" }, "syntax"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "yaml" }, "logging.format"},
		{"events subject", func(c *Config) { c.Events.NATSURL = "nats://x"; c.Events.Subject = "" }, "events.subject"},
		{"events timeout", func(c *Config) { c.Events.NATSURL = "nats://x"; c.Events.Timeout = "soon" }, "events.timeout"},
		{"retry backoff", func(c *Config) { c.Events.NATSURL = "nats://x"; c.Events.Retry.Backoff = "random" }, "events.retry.backoff"},
		{"retry delay", func(c *Config) { c.Events.NATSURL = "nats://x"; c.Events.Retry.Max = "later" }, "events.retry"},
		{"retry count", func(c *Config) { c.Events.NATSURL = "nats://x"; c.Events.Retry.MaxRetries = -1 }, "events.retry.max_retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			lce, ok := lcerrors.As(err)
			require.True(t, ok)
			assert.Equal(t, lcerrors.CategoryValidation, lce.Category)
			assert.Equal(t, tt.field, lce.Context["field"])
		})
	}
}

func TestValidate_EmptyValuesFallBackToDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "inline", cfg.Syntax)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestEventTimeout_Default(t *testing.T) {
	cfg := &Config{}
	d, err := cfg.EventTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
}

func TestRetryConfig(t *testing.T) {
	cfg := Default()
	initial, maxDelay, err := cfg.Events.Retry.Delays()
	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, initial)
	assert.Equal(t, 2*time.Second, maxDelay)

	initial, maxDelay, err = RetryConfig{}.Delays()
	require.NoError(t, err)
	assert.Zero(t, initial)
	assert.Zero(t, maxDelay)

	assert.Equal(t, RetryBackoffExponential, NormalizeRetryBackoff(" Exponential "))
	assert.Equal(t, RetryBackoffLinear, NormalizeRetryBackoff(""))
	assert.Empty(t, NormalizeRetryBackoff("random"))
}

func TestLogLevel_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogLevelDebug.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogLevel(" INFO ").SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogLevelWarn.SlogLevel())
	assert.Equal(t, slog.LevelError, LogLevelError.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogLevel("bogus").SlogLevel())
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggingConfig{Level: LogLevelInfo, Format: LogFormatJSON}.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
