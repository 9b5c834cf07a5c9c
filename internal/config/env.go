package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	lcerrors "git.home.luguber.info/inful/linkcheck/internal/errors"
)

// Environment variables consulted by Load.
const (
	EnvFormat      = "LINKCHECK_FORMAT"
	EnvSyntax      = "LINKCHECK_SYNTAX"
	EnvLogLevel    = "LINKCHECK_LOG_LEVEL"
	EnvLogFormat   = "LINKCHECK_LOG_FORMAT"
	EnvMetricsFile = "LINKCHECK_METRICS_FILE"
	EnvNATSURL     = "LINKCHECK_NATS_URL"
	EnvNATSSubject = "LINKCHECK_NATS_SUBJECT"
)

// envFiles are loaded in order when present. Variables already set in the
// process environment are never overwritten.
var envFiles = []string{".env", ".env.local"}

func loadEnvFile() error {
	for _, path := range envFiles {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return lcerrors.ConfigInvalid(path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Format, EnvFormat)
	setString(&cfg.Syntax, EnvSyntax)
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = LogFormat(v)
	}
	setString(&cfg.Metrics.File, EnvMetricsFile)
	setString(&cfg.Events.NATSURL, EnvNATSURL)
	setString(&cfg.Events.Subject, EnvNATSSubject)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
