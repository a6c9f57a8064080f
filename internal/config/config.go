// Package config holds the benchmark configuration: defaults, the optional
// YAML file loader, and validation. Everything is checked here, before any
// network activity; the measurement core never parses strings.
package config

import "time"

// Config holds every knob the benchmark understands.
type Config struct {
	// Bucket is the target bucket name. Required.
	Bucket string `json:"bucket" yaml:"bucket"`

	// Region is the bucket's region, used for request signing.
	Region string `json:"region" yaml:"region"`

	// Endpoint overrides the AWS endpoint for S3-compatible stores
	// (e.g. MinIO). Path-style addressing is used when set.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// PayloadSize is the uploaded object size in bytes.
	PayloadSize int `json:"payloadSize" yaml:"payloadSize"`

	// Iterations is the number of measured baseline/treatment rounds.
	Iterations int `json:"iterations" yaml:"iterations"`

	// Downloads enables the GET measurements in each iteration.
	Downloads bool `json:"downloads" yaml:"downloads"`

	// KeyPrefix namespaces every object key this run creates.
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`

	// SSEAlgorithm is the server-side encryption algorithm for the
	// treatment variant: AES256 or aws:kms.
	SSEAlgorithm string `json:"sseAlgorithm" yaml:"sseAlgorithm"`

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `json:"maxRetries" yaml:"maxRetries"`

	// BaseDelay is the first backoff step and the jitter range.
	BaseDelay Duration `json:"baseDelay" yaml:"baseDelay"`

	// MaxDelay caps the exponential backoff.
	MaxDelay Duration `json:"maxDelay" yaml:"maxDelay"`

	// Pause is the idle time between iterations, a contention-reduction
	// knob for unreliable links.
	Pause Duration `json:"pause" yaml:"pause"`

	// Warmup runs one unrecorded iteration before measurement starts.
	Warmup bool `json:"warmup" yaml:"warmup"`

	// StrictCleanup aborts the run when a cleanup delete fails instead of
	// logging and continuing.
	StrictCleanup bool `json:"strictCleanup" yaml:"strictCleanup"`

	// Verbose enables per-retry and per-sample diagnostics. Flag only.
	Verbose bool `json:"-" yaml:"-"`
}

// Default returns the configuration before flags or a file are applied.
func Default() *Config {
	return &Config{
		Region:       "us-east-1",
		PayloadSize:  1 << 20,
		Iterations:   10,
		Downloads:    true,
		KeyPrefix:    "ssebench",
		SSEAlgorithm: "AES256",
		MaxRetries:   3,
		BaseDelay:    Duration(200 * time.Millisecond),
		MaxDelay:     Duration(2 * time.Second),
		Pause:        Duration(500 * time.Millisecond),
	}
}

// Duration is a time.Duration that unmarshals from YAML/JSON strings like
// "250ms" or "2s".
type Duration time.Duration

// GetDuration returns the duration or a default if unset.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
