package service

import (
	"errors"
	"fmt"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeIO         = "IO_ERROR"
	CodeStorage    = "STORAGE_ERROR"
)

// BusinessError is what every service operation returns on failure.
// The UI renders Message; Code drives tests and any future mapping.
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("invalid value for %q: %s", field, reason),
		Details: map[string]any{"field": field, "reason": reason},
	}
}

func NewNotFound(id int64) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("task %d not found", id),
		Details: map[string]any{"id": id},
	}
}

func NewIOError(op string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodeIO,
		Message: op + " failed",
		Details: map[string]any{"operation": op},
		Err:     err,
	}
}

func NewStorageError(op string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodeStorage,
		Message: op + " failed",
		Details: map[string]any{"operation": op},
		Err:     err,
	}
}

// CodeOf extracts the business error code, or "" for foreign errors.
func CodeOf(err error) string {
	var b *BusinessError
	if errors.As(err, &b) {
		return b.Code
	}
	return ""
}
