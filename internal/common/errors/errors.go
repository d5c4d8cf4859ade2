// Package errors provides the standardized error taxonomy of the prediction pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMalformedInput         ErrorCode = "MALFORMED_INPUT"
	ErrCodeModelLoadFailed        ErrorCode = "MODEL_LOAD_FAILED"
	ErrCodeUnknownCategory        ErrorCode = "UNKNOWN_CATEGORY"
	ErrCodeInvalidFeatureValue    ErrorCode = "INVALID_FEATURE_VALUE"
	ErrCodeInverseTransformFailed ErrorCode = "INVERSE_TRANSFORM_FAILED"
	ErrCodeUnexpected             ErrorCode = "UNEXPECTED_ERROR"
)

// Process exit codes. Every failure class shares ExitFailure so the calling
// process only has to test for a non-zero status.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// StandardError represents a structured pipeline error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a StandardError carrying the same code, so that
// errors.Is(err, &StandardError{Code: ErrCodeUnknownCategory}) works through wrapping.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrMalformedInput         = &StandardError{Code: ErrCodeMalformedInput}
	ErrModelLoadFailed        = &StandardError{Code: ErrCodeModelLoadFailed}
	ErrUnknownCategory        = &StandardError{Code: ErrCodeUnknownCategory}
	ErrInvalidFeatureValue    = &StandardError{Code: ErrCodeInvalidFeatureValue}
	ErrInverseTransformFailed = &StandardError{Code: ErrCodeInverseTransformFailed}
	ErrUnexpected             = &StandardError{Code: ErrCodeUnexpected}
)

// ==========================
// 2. Error Constructors
// ==========================

// NewMalformedInputError reports a payload that is not a structured JSON object.
func NewMalformedInputError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedInput,
		Message:   "Input is not a valid JSON object",
		Details:   errString(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewModelLoadError reports a missing or corrupt model artifact.
func NewModelLoadError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelLoadFailed,
		Message:   "Model artifact could not be loaded",
		Details:   fmt.Sprintf("path: %s, error: %s", path, errString(err)),
		Retryable: false,
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewUnknownCategoryError reports a label absent from its closed vocabulary.
func NewUnknownCategoryError(field, value string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCategory,
		Message:   "Unknown category",
		Details:   fmt.Sprintf("field: %s, value: %q", field, value),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field, "value": value},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFeatureValueError reports fields that are missing or cannot be
// coerced to their expected kind. problems maps field name to reason.
func NewInvalidFeatureValueError(problems map[string]string) *StandardError {
	fields := sortedKeys(problems)
	meta := make(map[string]interface{}, len(problems))
	for k, v := range problems {
		meta[k] = v
	}
	details := ""
	for i, f := range fields {
		if i > 0 {
			details += "; "
		}
		details += fmt.Sprintf("%s: %s", f, problems[f])
	}
	return &StandardError{
		Code:      ErrCodeInvalidFeatureValue,
		Message:   "Invalid feature value",
		Details:   details,
		Retryable: false,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// NewInverseTransformError reports a transformed value outside the Box-Cox inverse domain.
func NewInverseTransformError(transformed, lambda float64, reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInverseTransformFailed,
		Message:   "Inverse transform undefined for model output",
		Details:   fmt.Sprintf("transformed: %v, lambda: %v, %s", transformed, lambda, reason),
		Retryable: false,
		Metadata:  map[string]interface{}{"transformed": transformed, "lambda": lambda},
		Timestamp: time.Now().UTC(),
	}
}

// NewUnexpectedError wraps anything the pipeline did not anticipate.
func NewUnexpectedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnexpected,
		Message:   "Unexpected error",
		Details:   errString(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError returns err as a StandardError, normalizing foreign errors
// into UNEXPECTED_ERROR. A nil error yields nil.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewUnexpectedError(err)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// GetErrorCategory returns the pipeline stage an error code belongs to.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeMalformedInput:
		return "decode"
	case ErrCodeUnknownCategory, ErrCodeInvalidFeatureValue:
		return "encode"
	case ErrCodeModelLoadFailed:
		return "inference"
	case ErrCodeInverseTransformFailed:
		return "transform"
	default:
		return "unknown"
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
