package errors

import (
	"fmt"
	"time"
)

// ExtractionError records why a single input file produced no report row
type ExtractionError struct {
	Type       ErrorType `json:"type" yaml:"type"`
	Message    string    `json:"message" yaml:"message"`
	FilePath   string    `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	StackTrace string    `json:"stack_trace,omitempty" yaml:"-"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Err        error     `json:"-" yaml:"-"`
}

// ErrorType represents the stage at which a file was rejected
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeFileAccess
	ErrorTypePathEscape
	ErrorTypeInvalidFile
	ErrorTypeDecode
	ErrorTypeMalformedInput
	ErrorTypeUnexpected
)

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type.String(), e.FilePath, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeFileAccess:
		return "FILE_ACCESS"
	case ErrorTypePathEscape:
		return "PATH_ESCAPE"
	case ErrorTypeInvalidFile:
		return "INVALID_FILE"
	case ErrorTypeDecode:
		return "DECODE"
	case ErrorTypeMalformedInput:
		return "MALFORMED_INPUT"
	case ErrorTypeUnexpected:
		return "UNEXPECTED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets summaries render the type by name
func (et ErrorType) MarshalText() ([]byte, error) {
	return []byte(et.String()), nil
}

// NewExtractionError creates an ExtractionError for filePath
func NewExtractionError(errorType ErrorType, filePath, message string) *ExtractionError {
	return &ExtractionError{
		Type:      errorType,
		Message:   message,
		FilePath:  filePath,
		Timestamp: time.Now(),
	}
}

// WrapError wraps err as an ExtractionError of the given type
func WrapError(errorType ErrorType, filePath string, err error) *ExtractionError {
	return &ExtractionError{
		Type:      errorType,
		Message:   err.Error(),
		FilePath:  filePath,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// WithStack attaches a stack trace, used for recovered panics
func (e *ExtractionError) WithStack(stack []byte) *ExtractionError {
	e.StackTrace = string(stack)
	return e
}
