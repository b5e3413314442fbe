package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeInternal              = "INTERNAL_ERROR"
	ErrCodeBadRequest            = "BAD_REQUEST"
	ErrCodeSessionAlreadyActive  = "SESSION_ALREADY_ACTIVE"
	ErrCodeExamAlreadyActive     = "EXAM_ALREADY_ACTIVE"
	ErrCodeNoActiveSession       = "NO_ACTIVE_SESSION"
	ErrCodeNoActiveExam          = "NO_ACTIVE_EXAM"
	ErrCodeCompleted             = "COMPLETED"
	ErrCodeNoWordsAvailable      = "NO_WORDS_AVAILABLE"
	ErrCodeInsufficientWords     = "INSUFFICIENT_WORDS"
	ErrCodeInvalidChoice         = "INVALID_CHOICE"
	ErrCodeInvalidQuestionNumber = "INVALID_QUESTION_NUMBER"
	ErrCodeBusy                  = "BUSY"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string         // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string         // Human-readable error message
	Status  int            // HTTP status code
	Details map[string]any // Extra structured data surfaced to callers (optional)
	Err     error          // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError carrying the same code, so the
// sentinels below can be matched with errors.Is regardless of message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Engine state sentinels. Compare with errors.Is.
var (
	ErrSessionAlreadyActive = &AppError{
		Code:    ErrCodeSessionAlreadyActive,
		Message: "a study session is already active",
		Status:  http.StatusConflict,
	}
	ErrExamAlreadyActive = &AppError{
		Code:    ErrCodeExamAlreadyActive,
		Message: "an exam is already active",
		Status:  http.StatusConflict,
	}
	ErrNoActiveSession = &AppError{
		Code:    ErrCodeNoActiveSession,
		Message: "no active study session",
		Status:  http.StatusConflict,
	}
	ErrNoActiveExam = &AppError{
		Code:    ErrCodeNoActiveExam,
		Message: "no active exam",
		Status:  http.StatusConflict,
	}
	ErrCompleted = &AppError{
		Code:    ErrCodeCompleted,
		Message: "all items have been consumed",
		Status:  http.StatusConflict,
	}
	ErrInvalidChoice = &AppError{
		Code:    ErrCodeInvalidChoice,
		Message: "choice index out of range",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidQuestionNumber = &AppError{
		Code:    ErrCodeInvalidQuestionNumber,
		Message: "question number out of range",
		Status:  http.StatusBadRequest,
	}
	ErrNoWordsAvailable = &AppError{
		Code:    ErrCodeNoWordsAvailable,
		Message: "no words available",
		Status:  http.StatusUnprocessableEntity,
	}
	ErrInsufficientWords = &AppError{
		Code:    ErrCodeInsufficientWords,
		Message: "not enough words",
		Status:  http.StatusUnprocessableEntity,
	}
	ErrNotFound = &AppError{
		Code:    ErrCodeNotFound,
		Message: "not found",
		Status:  http.StatusNotFound,
	}
)

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewBusyError reports a temporarily saturated resource such as a full job queue.
func NewBusyError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeBusy,
		Message: "server is busy, try again later",
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

// NewNoWordsAvailableError reports an empty word pool for the given filter.
func NewNoWordsAvailableError(filter string) *AppError {
	return &AppError{
		Code:    ErrCodeNoWordsAvailable,
		Message: fmt.Sprintf("no words available (%s)", filter),
		Status:  http.StatusUnprocessableEntity,
	}
}

// NewInsufficientWordsError reports a word pool smaller than requested.
// The deficit is carried in Details.
func NewInsufficientWordsError(needed, available int) *AppError {
	return &AppError{
		Code:    ErrCodeInsufficientWords,
		Message: fmt.Sprintf("need %d words but only %d available", needed, available),
		Status:  http.StatusUnprocessableEntity,
		Details: map[string]any{
			"needed":    needed,
			"available": available,
			"deficit":   needed - available,
		},
	}
}

// AsAppError extracts an AppError from err, wrapping anything else as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
