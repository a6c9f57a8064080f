package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks the configuration for semantic problems. It runs before
// any network activity and collects every problem rather than stopping at
// the first.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if c.Bucket == "" {
		errs.Add("bucket", "bucket name is required")
	}
	if c.Region == "" {
		errs.Add("region", "region is required")
	}
	if c.Endpoint != "" {
		parsed, err := url.Parse(c.Endpoint)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs.Add("endpoint", fmt.Sprintf("not a valid URL: %q", c.Endpoint))
		}
	}
	if c.PayloadSize <= 0 {
		errs.Add("payloadSize", "payload size must be positive")
	}
	if c.Iterations <= 0 {
		errs.Add("iterations", "iteration count must be positive")
	}
	if c.SSEAlgorithm != "AES256" && c.SSEAlgorithm != "aws:kms" {
		errs.Add("sseAlgorithm", fmt.Sprintf("must be AES256 or aws:kms, got %q", c.SSEAlgorithm))
	}
	if c.MaxRetries < 0 {
		errs.Add("maxRetries", "max retries cannot be negative")
	}
	if c.BaseDelay <= 0 {
		errs.Add("baseDelay", "base delay must be positive")
	}
	if c.MaxDelay < c.BaseDelay {
		errs.Add("maxDelay", "max delay must be at least the base delay")
	}
	if c.Pause < 0 {
		errs.Add("pause", "pause cannot be negative")
	}
	if strings.HasPrefix(c.KeyPrefix, "/") || strings.HasSuffix(c.KeyPrefix, "/") {
		errs.Add("keyPrefix", "key prefix must not start or end with '/'")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
