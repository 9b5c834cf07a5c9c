package config

import (
	"time"

	"git.home.luguber.info/inful/linkcheck/internal/foundation/normalization"
)

// RetryBackoffMode enumerates supported backoff strategies for event publishing.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffNormalizer = normalization.NewNormalizer("retry backoff", map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
}, RetryBackoffLinear)

// NormalizeRetryBackoff converts user input (case-insensitive) into a typed
// mode, returning empty string for unknown values.
func NormalizeRetryBackoff(raw string) RetryBackoffMode {
	mode, err := retryBackoffNormalizer.NormalizeWithError(raw)
	if err != nil {
		return ""
	}
	return mode
}

// RetryConfig controls retries of failed event publications.
type RetryConfig struct {
	Backoff    RetryBackoffMode `yaml:"backoff"`     // fixed|linear|exponential
	Initial    string           `yaml:"initial"`     // first delay, e.g. 200ms
	Max        string           `yaml:"max"`         // delay cap
	MaxRetries int              `yaml:"max_retries"` // retries after the first attempt
}

// Delays parses the initial and maximum retry delays. Empty values yield zero.
func (r RetryConfig) Delays() (initial, maxDelay time.Duration, err error) {
	if r.Initial != "" {
		if initial, err = time.ParseDuration(r.Initial); err != nil {
			return 0, 0, err
		}
	}
	if r.Max != "" {
		if maxDelay, err = time.ParseDuration(r.Max); err != nil {
			return 0, 0, err
		}
	}
	return initial, maxDelay, nil
}
