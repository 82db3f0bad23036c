// Package errors provides centralized error definitions for sift: sentinel
// errors, domain error types with context, and classification helpers.
//
// The filter core never returns errors; unknown filter names and failed
// lookups degrade to no-ops and empty results. Errors come from the layers
// around it: compiling configured rules and loading datasets.
//
// # Error Types
//
//   - RuleError: a configured filter rule could not be compiled
//   - DatasetError: a dataset file could not be read or decoded
//   - NotFoundError: a named resource does not exist
//   - ValidationError: invalid input
//
// # Usage
//
//	err := errors.NewRuleError("unsupported operator", errors.ErrUnknownOperator).
//	    WithFilter("recent").WithOperator("newer")
//
//	if errors.Is(err, errors.ErrUnknownOperator) { ... }
//
//	var ruleErr *errors.RuleError
//	if errors.As(err, &ruleErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityWarning is for errors that leave the program usable.
	SeverityWarning Severity = iota
	// SeverityError is for errors that abort the current command.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Rule-related sentinel errors
var (
	// ErrUnknownOperator indicates a rule names an operator sift does not implement.
	ErrUnknownOperator = New("unknown operator")
	// ErrInvalidRule indicates a rule is missing a required part or has a malformed operand.
	ErrInvalidRule = New("invalid rule")
	// ErrDuplicateFilter indicates two rules share a name.
	ErrDuplicateFilter = New("duplicate filter name")
)

// Dataset-related sentinel errors
var (
	// ErrUnsupportedFormat indicates a dataset file extension sift cannot decode.
	ErrUnsupportedFormat = New("unsupported dataset format")
	// ErrDatasetNotFound indicates a dataset file does not exist.
	ErrDatasetNotFound = New("dataset not found")
	// ErrMalformedDataset indicates a dataset file decoded to something other than a list of records.
	ErrMalformedDataset = New("malformed dataset")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error
// -----------------------------------------------------------------------------

// SiftError is implemented by every error type in this package.
type SiftError interface {
	error
	Unwrap() error
	Severity() Severity
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "prefix [k=v, ...]: message: cause".
func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// RuleError represents a configured filter rule that could not be compiled.
//
// Example:
//
//	err := errors.NewRuleError("unsupported operator", errors.ErrUnknownOperator).
//	    WithFilter("recent").WithOperator("newer")
//	fmt.Println(err) // "rule error [filter=recent, op=newer]: unsupported operator: unknown operator"
type RuleError struct {
	baseError
	Filter   string
	Field    string
	Operator string
}

// NewRuleError creates a new RuleError.
func NewRuleError(message string, cause error) *RuleError {
	return &RuleError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithFilter adds the filter name to the error context.
func (e *RuleError) WithFilter(name string) *RuleError {
	e.Filter = name
	return e
}

// WithField adds the record field to the error context.
func (e *RuleError) WithField(field string) *RuleError {
	e.Field = field
	return e
}

// WithOperator adds the operator to the error context.
func (e *RuleError) WithOperator(op string) *RuleError {
	e.Operator = op
	return e
}

// Error returns the formatted error message.
func (e *RuleError) Error() string {
	var parts []string
	if e.Filter != "" {
		parts = append(parts, "filter="+e.Filter)
	}
	if e.Field != "" {
		parts = append(parts, "field="+e.Field)
	}
	if e.Operator != "" {
		parts = append(parts, "op="+e.Operator)
	}
	return e.format("rule error", parts)
}

// DatasetError represents a dataset file that could not be loaded.
//
// Example:
//
//	err := errors.NewDatasetError("decode failed", cause).WithPath("books.yaml").WithFormat("yaml")
type DatasetError struct {
	baseError
	Path   string
	Format string
}

// NewDatasetError creates a new DatasetError.
func NewDatasetError(message string, cause error) *DatasetError {
	return &DatasetError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithPath adds the dataset path to the error context.
func (e *DatasetError) WithPath(path string) *DatasetError {
	e.Path = path
	return e
}

// WithFormat adds the dataset format to the error context.
func (e *DatasetError) WithFormat(format string) *DatasetError {
	e.Format = format
	return e
}

// Error returns the formatted error message.
func (e *DatasetError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, "path="+e.Path)
	}
	if e.Format != "" {
		parts = append(parts, "format="+e.Format)
	}
	return e.format("dataset error", parts)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a named resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("filter", "recent")
//	fmt.Println(err) // "filter 'recent' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ValidationError represents invalid input.
//
// Example:
//
//	err := errors.NewValidationError("payload must be name=value").WithField("--apply").WithValue("=x")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, "field="+e.Field)
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var siftErr SiftError
	if As(err, &siftErr) {
		return siftErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement SiftError.
func GetSeverity(err error) Severity {
	var siftErr SiftError
	if As(err, &siftErr) {
		return siftErr.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
