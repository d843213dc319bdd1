package config

import (
	"errors"
	"fmt"
)

// ErrParameter marks a missing, invalid or inconsistent scenario
// parameter. It is always detected at construction time.
var ErrParameter = errors.New("parameter error")

// ParameterError reports which field of the scenario is bad and why
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter %s: %s", e.Field, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrParameter
}

func paramErr(field, format string, args ...any) error {
	return &ParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
