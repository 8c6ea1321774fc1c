package config

import (
	"fmt"
)

// ObservabilityConfig groups logging and APM settings.
//
// Keys are flat under the observability section so they map one-to-one onto
// env vars, e.g. COURSES_OBSERVABILITY_NEWRELIC_LICENSE_KEY.
type ObservabilityConfig struct {
	// ServiceName and Environment are forced by LoadConfig.
	ServiceName string `koanf:"service_name" validate:"required"`
	Environment string `koanf:"environment" validate:"required"`

	// LoggingLevel is one of debug, info, warn, error. Empty picks a default
	// based on Environment (see GetLogLevel).
	LoggingLevel string `koanf:"logging_level"`

	// LoggingFormat is "json" or "console".
	LoggingFormat string `koanf:"logging_format" validate:"omitempty,oneof=json console"`

	// NewRelicLicenseKey enables the New Relic agent when non-empty.
	NewRelicLicenseKey string `koanf:"newrelic_license_key"`

	NewRelicAppLogForwardingEnabled   bool `koanf:"newrelic_app_log_forwarding_enabled"`
	NewRelicDistributedTracingEnabled bool `koanf:"newrelic_distributed_tracing_enabled"`
	NewRelicDebugLogging              bool `koanf:"newrelic_debug_logging"`
}

// DefaultObservabilityConfig provides the defaults used for local development.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName:   "courses",
		Environment:   "development",
		LoggingLevel:  "",
		LoggingFormat: "json",

		NewRelicLicenseKey:                "",
		NewRelicAppLogForwardingEnabled:   true,
		NewRelicDistributedTracingEnabled: true,
		NewRelicDebugLogging:              false,
	}
}

// Validate applies the checks struct tags cannot express.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if level := c.GetLogLevel(); !validLevels[level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", level)
	}

	return nil
}

// GetLogLevel returns the effective log level: the configured one, or
// debug in development and info everywhere else.
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.LoggingLevel != "" {
		return c.LoggingLevel
	}
	if c.Environment == "development" {
		return "debug"
	}
	return "info"
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// NewRelicEnabled reports whether a license key was supplied.
func (c *ObservabilityConfig) NewRelicEnabled() bool {
	return c.NewRelicLicenseKey != ""
}
