// Package errors provides custom error types for the regsync system.
// These errors enable programmatic error checking and carry enough
// identifying detail (raw name, row index, column name) to trace a
// failed reconciliation run back to the offending source record.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the regsync system
var (
	// ErrInvalidName indicates a name string that cannot be normalized
	ErrInvalidName = errors.New("invalid name")

	// ErrSchema indicates a field map referencing a column missing from the source
	ErrSchema = errors.New("schema mapping failed")

	// ErrDateParse indicates an unparseable date or timestamp value
	ErrDateParse = errors.New("date parse failed")

	// ErrMalformedPostcode indicates a postcode too short to split
	ErrMalformedPostcode = errors.New("malformed postcode")

	// ErrSourceUnavailable indicates a collaborator I/O failure (network, sheet access)
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// NameError represents a name string that the normalizer rejected.
type NameError struct {
	Raw     string
	Message string
}

// Error implements the error interface
func (e *NameError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("invalid name %q: %s", e.Raw, e.Message)
	}
	return fmt.Sprintf("invalid name %q", e.Raw)
}

// Is implements errors.Is support
func (e *NameError) Is(target error) bool {
	return target == ErrInvalidName
}

// NewNameError creates a new NameError
func NewNameError(raw, message string) *NameError {
	return &NameError{Raw: raw, Message: message}
}

// SchemaError represents a field map entry with no matching source column.
type SchemaError struct {
	Field  string // canonical field name (first, last, dob, postcode, address)
	Column string // source column the field map pointed at
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema mapping for %s: column %q not present in source", e.Field, e.Column)
	}
	return fmt.Sprintf("schema mapping for %s: no column configured", e.Field)
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(field, column string) *SchemaError {
	return &SchemaError{Field: field, Column: column}
}

// DateError represents an unparseable date or timestamp value.
// Row is the zero-based index of the offending record, or -1 when
// the failure is not tied to a specific row.
type DateError struct {
	Field string
	Value string
	Row   int
	Err   error
}

// Error implements the error interface
func (e *DateError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("cannot parse %s value %q at row %d", e.Field, e.Value, e.Row)
	}
	return fmt.Sprintf("cannot parse %s value %q", e.Field, e.Value)
}

// Unwrap implements errors.Unwrap
func (e *DateError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DateError) Is(target error) bool {
	return target == ErrDateParse
}

// NewDateError creates a new DateError
func NewDateError(field, value string, row int, err error) *DateError {
	return &DateError{Field: field, Value: value, Row: row, Err: err}
}

// PostcodeError represents a postcode too short to split into
// region and inward parts.
type PostcodeError struct {
	Value string
	Row   int
}

// Error implements the error interface
func (e *PostcodeError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("malformed postcode %q at row %d: need at least 4 characters", e.Value, e.Row)
	}
	return fmt.Sprintf("malformed postcode %q: need at least 4 characters", e.Value)
}

// Is implements errors.Is support
func (e *PostcodeError) Is(target error) bool {
	return target == ErrMalformedPostcode
}

// NewPostcodeError creates a new PostcodeError
func NewPostcodeError(value string, row int) *PostcodeError {
	return &PostcodeError{Value: value, Row: row}
}

// SourceError represents a collaborator I/O failure: the league page
// could not be fetched or parsed, or a spreadsheet call failed.
type SourceError struct {
	Source  string // "league", "sheets", ...
	Message string
	Err     error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("source %s unavailable: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceError creates a new SourceError
func NewSourceError(source, message string, err error) *SourceError {
	return &SourceError{Source: source, Message: message, Err: err}
}

// StageError wraps a pipeline step failure with the stage that produced it.
// The pipeline never recovers from these; they identify where a run died.
type StageError struct {
	Stage string // "normalize", "match", "filter", "format", "dedup"
	Err   error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("reconciliation stage %s: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// Helper functions for error checking

// IsInvalidName checks if an error is a name normalization error
func IsInvalidName(err error) bool {
	return errors.Is(err, ErrInvalidName)
}

// IsSchema checks if an error is a schema mapping error
func IsSchema(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsDateParse checks if an error is a date parse error
func IsDateParse(err error) bool {
	return errors.Is(err, ErrDateParse)
}

// IsMalformedPostcode checks if an error is a postcode error
func IsMalformedPostcode(err error) bool {
	return errors.Is(err, ErrMalformedPostcode)
}

// IsSourceUnavailable checks if an error is a collaborator I/O failure
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// Stage extracts the failing pipeline stage from an error chain,
// or returns the empty string when no StageError is present.
func Stage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// WrapSource wraps an error as a SourceError
func WrapSource(source string, err error) error {
	if err == nil {
		return nil
	}
	return NewSourceError(source, "", err)
}

// WrapStage wraps an error as a StageError
func WrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return NewStageError(stage, err)
}
