package config

import "fmt"

// ConfigError reports a missing or malformed configuration value
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

// NewConfigError creates a new configuration error
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error for %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("config error for %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying parse error, if any
func (e *ConfigError) Unwrap() error {
	return e.Err
}
