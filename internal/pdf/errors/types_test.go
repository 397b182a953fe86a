package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrorTypeFileAccess, "FILE_ACCESS"},
		{ErrorTypePathEscape, "PATH_ESCAPE"},
		{ErrorTypeInvalidFile, "INVALID_FILE"},
		{ErrorTypeDecode, "DECODE"},
		{ErrorTypeMalformedInput, "MALFORMED_INPUT"},
		{ErrorTypeUnexpected, "UNEXPECTED"},
		{ErrorTypeUnknown, "UNKNOWN"},
		{ErrorType(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.et.String())
			text, err := tt.et.MarshalText()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(text))
		})
	}
}

func TestWrapError(t *testing.T) {
	cause := fmt.Errorf("reading xref: %w", stderrors.New("truncated"))
	err := WrapError(ErrorTypeDecode, "data/a.pdf", cause)

	assert.Equal(t, "[DECODE] data/a.pdf: reading xref: truncated", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, err.Timestamp.IsZero())
}

func TestNewExtractionError(t *testing.T) {
	err := NewExtractionError(ErrorTypeUnexpected, "", "panic: boom").WithStack([]byte("goroutine 1"))

	assert.Equal(t, "[UNEXPECTED] panic: boom", err.Error())
	assert.Equal(t, "goroutine 1", err.StackTrace)
	assert.Nil(t, stderrors.Unwrap(err))
}
