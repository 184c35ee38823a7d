package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a document or job file could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a schema reference could not be resolved.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a composition cycle was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrComposition indicates a malformed composed schema.
	ErrComposition = errors.New("composition error")

	// ErrType indicates a property type that cannot be mapped.
	ErrType = errors.New("type error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an OpenAPI document or a job file.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a schema reference that cannot be resolved,
// either because the target does not exist or because following it loops.
type ReferenceError struct {
	// Ref is the name of the schema that could not be resolved
	Ref string
	// From is the schema (or "Class.property") holding the reference
	From string
	// IsCircular is true if this error is due to a composition cycle
	IsCircular bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.From != "" {
		msg += " (from " + e.From + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// CompositionError represents a composed schema that cannot be flattened,
// such as one declaring both allOf and its own properties.
type CompositionError struct {
	// Schema is the name of the offending schema
	Schema string
	// Relations lists the populated composition keywords (e.g., "allOf")
	Relations []string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *CompositionError) Error() string {
	msg := "composition error"
	if e.Schema != "" {
		msg += " in schema " + e.Schema
	}
	if len(e.Relations) > 0 {
		msg += fmt.Sprintf(" %v", e.Relations)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *CompositionError) Is(target error) bool {
	return target == ErrComposition
}

// TypeError represents a property whose declared type cannot be mapped
// to a target-language type.
type TypeError struct {
	// Class is the generated class owning the property
	Class string
	// Property is the (field-cased) property name
	Property string
	// Type is the offending type literal
	Type string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *TypeError) Error() string {
	msg := "type error"
	if e.Class != "" || e.Property != "" {
		msg += " at " + e.Class + "." + e.Property
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Type != "" {
		msg += fmt.Sprintf(" %q", e.Type)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *TypeError) Is(target error) bool {
	return target == ErrType
}

// ResourceLimitError represents a resource exhaustion condition,
// such as a remote document larger than the configured maximum.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded (e.g., "file_size")
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid job file or option.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
