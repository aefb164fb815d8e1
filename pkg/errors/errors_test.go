package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "error without cause",
			err:      FileError(CodeFileNotFound, "file missing", nil),
			expected: "[file:FILE_NOT_FOUND] file missing",
		},
		{
			name:     "error with cause",
			err:      WorkbookError(CodeWorkbookOpen, "cannot open workbook", fmt.Errorf("corrupt zip")),
			expected: "[workbook:WORKBOOK_OPEN_FAILED] cannot open workbook: corrupt zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := ValidationError(CodeInvalidDate, "bad date", cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestAppErrorUserMessage(t *testing.T) {
	err := ConfigurationError(CodeInvalidConfig, "internal detail", nil)

	if got := err.GetUserMessage(); got != "internal detail" {
		t.Errorf("GetUserMessage() = %q, want fallback to Message", got)
	}

	err.WithUserMessage("please check your configuration file")
	if got := err.GetUserMessage(); got != "please check your configuration file" {
		t.Errorf("GetUserMessage() = %q, want user message", got)
	}
}

func TestAppErrorWithContext(t *testing.T) {
	err := FileError(CodeFileAccess, "access denied", nil).
		WithContext("path", "/data/orders").
		WithContext("operation", "scan")

	if err.Context["path"] != "/data/orders" {
		t.Errorf("context path = %v, want /data/orders", err.Context["path"])
	}
	if err.Context["operation"] != "scan" {
		t.Errorf("context operation = %v, want scan", err.Context["operation"])
	}
}

func TestIsCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{
			name:     "matching category",
			err:      WorkbookError(CodeSheetNotFound, "no sheets", nil),
			category: CategoryWorkbook,
			expected: true,
		},
		{
			name:     "non-matching category",
			err:      WorkbookError(CodeSheetNotFound, "no sheets", nil),
			category: CategoryFile,
			expected: false,
		},
		{
			name:     "wrapped app error",
			err:      errors.Wrap(ValidationError(CodeInvalidDate, "bad date", nil), "processing file"),
			category: CategoryValidation,
			expected: true,
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("plain"),
			category: CategoryInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCategory(tt.err, tt.category); got != tt.expected {
				t.Errorf("IsCategory() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"configuration error", ConfigurationError(CodeMissingConfig, "missing", nil), 2},
		{"file error", FileError(CodeFileNotFound, "missing", nil), 3},
		{"workbook error", WorkbookError(CodeWorkbookRead, "bad", nil), 4},
		{"validation error", ValidationError(CodeNoRecords, "empty", nil), 5},
		{"internal error", InternalError(CodeInternalError, "bug", nil), 10},
		{"plain error", fmt.Errorf("plain"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
