package config

import (
	"time"

	lcerrors "git.home.luguber.info/inful/linkcheck/internal/errors"
	"git.home.luguber.info/inful/linkcheck/internal/foundation/normalization"
	"git.home.luguber.info/inful/linkcheck/internal/markdown"
)

var formatNormalizer = normalization.NewNormalizer("format", map[string]string{
	"text": "text",
	"json": "json",
}, "text")

// Validate normalizes enum fields in place and rejects unknown values.
func (c *Config) Validate() error {
	format, err := formatNormalizer.NormalizeWithError(c.Format)
	if err != nil {
		return lcerrors.ValidationFailed("format", err.Error())
	}
	c.Format = format

	syntax, err := markdown.ParseSyntax(c.Syntax)
	if err != nil {
		return lcerrors.ValidationFailed("syntax", err.Error())
	}
	c.Syntax = string(syntax)

	level, err := logLevelNormalizer.NormalizeWithError(string(c.Logging.Level))
	if err != nil {
		return lcerrors.ValidationFailed("logging.level", err.Error())
	}
	c.Logging.Level = level

	logFormat, err := logFormatNormalizer.NormalizeWithError(string(c.Logging.Format))
	if err != nil {
		return lcerrors.ValidationFailed("logging.format", err.Error())
	}
	c.Logging.Format = logFormat

	if c.Events.Enabled() {
		if c.Events.Subject == "" {
			return lcerrors.ValidationFailed("events.subject", "required when events.nats_url is set")
		}
		if _, err := c.EventTimeout(); err != nil {
			return lcerrors.ValidationFailed("events.timeout", err.Error())
		}
		backoff, err := retryBackoffNormalizer.NormalizeWithError(string(c.Events.Retry.Backoff))
		if err != nil {
			return lcerrors.ValidationFailed("events.retry.backoff", err.Error())
		}
		c.Events.Retry.Backoff = backoff
		if _, _, err := c.Events.Retry.Delays(); err != nil {
			return lcerrors.ValidationFailed("events.retry", err.Error())
		}
		if c.Events.Retry.MaxRetries < 0 {
			return lcerrors.ValidationFailed("events.retry.max_retries", "cannot be negative")
		}
	}
	return nil
}

// EventTimeout parses the events timeout, defaulting to five seconds.
func (c *Config) EventTimeout() (time.Duration, error) {
	if c.Events.Timeout == "" {
		return 5 * time.Second, nil
	}
	return time.ParseDuration(c.Events.Timeout)
}
