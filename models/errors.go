package models

import "fmt"

// ConfigurationError reports an invalid run setup: a dataset without a colour,
// no dataset selected, a missing input file or an unparsable date.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Configf builds a ConfigurationError from a format string.
func Configf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
