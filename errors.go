package tact

import (
	"errors"
	"fmt"
)

// ConfigError reports a misconfigured creator or reducer at definition
// time. All configuration failures are local, synchronous, and surfaced
// immediately to the caller; nothing here is retried or swallowed.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Field names the offending input (e.g. "tag", "clauses[2]").
	Field string

	// Message is a human-readable description.
	Message string
}

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeEmptyTag indicates a creator was defined with an empty or
	// blank tag.
	ErrCodeEmptyTag ConfigErrorCode = "EMPTY_TAG"

	// ErrCodeNilBase indicates a base shape was supplied without a base
	// function.
	ErrCodeNilBase ConfigErrorCode = "NIL_BASE"

	// ErrCodeEmptyMatch indicates a reducer clause with an empty tag set.
	// Such a clause can never match and signals a caller mistake.
	ErrCodeEmptyMatch ConfigErrorCode = "EMPTY_MATCH"

	// ErrCodeNilHandler indicates a reducer clause without a handler.
	ErrCodeNilHandler ConfigErrorCode = "NIL_HANDLER"
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsEmptyTagError returns true if the error is an empty-tag configuration
// error. Uses errors.As to handle wrapped errors.
func IsEmptyTagError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce) && ce.Code == ErrCodeEmptyTag
}

// IsEmptyMatchError returns true if the error is an empty-match-set
// configuration error. Uses errors.As to handle wrapped errors.
func IsEmptyMatchError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce) && ce.Code == ErrCodeEmptyMatch
}

func newConfigError(code ConfigErrorCode, field, message string) *ConfigError {
	return &ConfigError{Code: code, Field: field, Message: message}
}
