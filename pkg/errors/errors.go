// Package errors provides categorized error handling for the delivery
// order service, with error codes, user-facing messages, and process
// exit codes layered on top of github.com/pkg/errors stack traces.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCategory represents the category of error for handling purposes
type ErrorCategory string

const (
	// CategoryFile indicates filesystem-level errors (missing files, permissions)
	CategoryFile ErrorCategory = "file"
	// CategoryWorkbook indicates errors opening or reading spreadsheet workbooks
	CategoryWorkbook ErrorCategory = "workbook"
	// CategoryValidation indicates errors in extracted data validation
	CategoryValidation ErrorCategory = "validation"
	// CategoryConfiguration indicates configuration-related errors
	CategoryConfiguration ErrorCategory = "configuration"
	// CategoryInternal indicates internal application errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound    ErrorCode = "FILE_NOT_FOUND"
	CodeFileAccess      ErrorCode = "FILE_ACCESS_DENIED"
	CodeDirectoryAccess ErrorCode = "DIRECTORY_ACCESS_DENIED"
	CodeDirectoryCreate ErrorCode = "DIRECTORY_CREATE_FAILED"

	// Workbook errors
	CodeWorkbookOpen  ErrorCode = "WORKBOOK_OPEN_FAILED"
	CodeWorkbookRead  ErrorCode = "WORKBOOK_READ_FAILED"
	CodeWorkbookWrite ErrorCode = "WORKBOOK_WRITE_FAILED"
	CodeSheetNotFound ErrorCode = "SHEET_NOT_FOUND"

	// Validation errors
	CodeInvalidDate   ErrorCode = "INVALID_DATE"
	CodeMissingHeader ErrorCode = "MISSING_HEADER"
	CodeNoRecords     ErrorCode = "NO_RECORDS_FOUND"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	CodeMissingConfig ErrorCode = "MISSING_CONFIG"

	// Internal errors
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodeReportGeneration ErrorCode = "REPORT_GENERATION_FAILED"
)

// AppError represents an application error with category, code, and context
type AppError struct {
	Category    ErrorCategory
	Code        ErrorCode
	Message     string
	Cause       error
	Context     map[string]interface{}
	UserMessage string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility
func (e *AppError) Unwrap() error {
	return e.Cause
}

// GetUserMessage returns a user-friendly error message
func (e *AppError) GetUserMessage() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	return e.Message
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithUserMessage sets a user-friendly message
func (e *AppError) WithUserMessage(message string) *AppError {
	e.UserMessage = message
	return e
}

// NewAppError creates a new application error
func NewAppError(category ErrorCategory, code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Category: category,
		Code:     code,
		Message:  message,
		Cause:    cause,
		Context:  make(map[string]interface{}),
	}
}

// FileError creates a file-related error
func FileError(code ErrorCode, message string, cause error) *AppError {
	return NewAppError(CategoryFile, code, message, cause)
}

// WorkbookError creates a workbook-related error
func WorkbookError(code ErrorCode, message string, cause error) *AppError {
	return NewAppError(CategoryWorkbook, code, message, cause)
}

// ValidationError creates a validation-related error
func ValidationError(code ErrorCode, message string, cause error) *AppError {
	return NewAppError(CategoryValidation, code, message, cause)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(code ErrorCode, message string, cause error) *AppError {
	return NewAppError(CategoryConfiguration, code, message, cause)
}

// InternalError creates an internal application error
func InternalError(code ErrorCode, message string, cause error) *AppError {
	return NewAppError(CategoryInternal, code, message, cause)
}

// Wrap wraps an error with additional context using pkg/errors
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with formatted context using pkg/errors
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Category == category
	}
	return false
}

// GetExitCode returns the appropriate process exit code for an error
func GetExitCode(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return 1
	}

	switch appErr.Category {
	case CategoryConfiguration:
		return 2
	case CategoryFile:
		return 3
	case CategoryWorkbook:
		return 4
	case CategoryValidation:
		return 5
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}
