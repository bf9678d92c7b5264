package types

import "fmt"

// AppError is the error shape raised by the service layer and translated
// to the response envelope by the handlers.
type AppError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d: %s [code: %s]", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// NewValidationError reports a missing or invalid request field (400).
func NewValidationError(message string) *AppError {
	return &AppError{Status: 400, Message: message, Code: "VALIDATION"}
}

// NewNotFoundError reports a resource that is absent, deleted, or not owned
// by the requesting user (404). The three causes are deliberately
// indistinguishable to the caller.
func NewNotFoundError(message string) *AppError {
	return &AppError{Status: 404, Message: message, Code: "NOT_FOUND"}
}

// NewConflictError reports a uniqueness violation (409).
func NewConflictError(message string) *AppError {
	return &AppError{Status: 409, Message: message, Code: "CONFLICT"}
}

// NewUnauthorizedError reports a missing request identity (401).
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: 401, Message: message, Code: "UNAUTHORIZED"}
}

// AsAppError returns err as an *AppError, wrapping unknown errors as a 500.
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return &AppError{Status: 500, Message: err.Error()}
}
