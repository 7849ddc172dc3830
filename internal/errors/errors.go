package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error taxonomy. Load and schema errors abort the affected dataset's view or
// report; report errors in batch mode are logged per dataset and the batch
// continues. Nothing is retried.
const (
	CodeLoadError     = "LOAD_ERROR"
	CodeSchemaError   = "SCHEMA_ERROR"
	CodeReportError   = "REPORT_ERROR"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
)

// LoadError marks a missing, empty, or malformed input file
func LoadError(dataset string, cause error) *AppError {
	return &AppError{
		Code:    CodeLoadError,
		Message: fmt.Sprintf("failed to load dataset %s", dataset),
		Cause:   cause,
	}
}

// SchemaError marks a column or type mismatch against the declared schema.
// The metric (or loader stage) and the expected column are named so the
// operator can identify the offending dataset.
func SchemaError(dataset, subject, column string, cause error) *AppError {
	return &AppError{
		Code:    CodeSchemaError,
		Message: fmt.Sprintf("dataset %s: %s requires column %q", dataset, subject, column),
		Cause:   cause,
	}
}

// ReportError marks a failure inside the delegated profiling engine,
// surfaced verbatim
func ReportError(dataset string, cause error) *AppError {
	return &AppError{
		Code:    CodeReportError,
		Message: fmt.Sprintf("profiling report failed for dataset %s", dataset),
		Cause:   cause,
	}
}

// ConfigInvalid marks invalid configuration
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// NotFound marks a missing resource
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// IsLoadError checks whether err carries the LOAD_ERROR code
func IsLoadError(err error) bool {
	return GetCode(err) == CodeLoadError
}

// IsSchemaError checks whether err carries the SCHEMA_ERROR code
func IsSchemaError(err error) bool {
	return GetCode(err) == CodeSchemaError
}

// IsReportError checks whether err carries the REPORT_ERROR code
func IsReportError(err error) bool {
	return GetCode(err) == CodeReportError
}
