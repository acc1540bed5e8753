package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the pipeline stage an error originated from.
type ErrorCode string

const (
	ErrCodeConnection ErrorCode = "CONNECTION"
	ErrCodeSchema     ErrorCode = "SCHEMA"
	ErrCodeGeneration ErrorCode = "GENERATION"
	ErrCodeInsertion  ErrorCode = "INSERTION"
	ErrCodeInvalid    ErrorCode = "INVALID"
)

// Error represents a classified seeding failure.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a stage classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

var (
	ErrNoCustomers     = NewError(ErrCodeGeneration, "no customers to draw from")
	ErrNoProducts      = NewError(ErrCodeGeneration, "no products to draw from")
	ErrColumnMismatch  = NewError(ErrCodeInvalid, "row length does not match column set")
	ErrInvalidBatchLen = NewError(ErrCodeInvalid, "batch size must be positive")
)

// IsDomainError reports whether err carries the given code anywhere in its chain.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	for errors.As(err, &dErr) {
		if dErr.Code == code {
			return true
		}
		err = dErr.Err
	}
	return false
}

// CodeOf returns the outermost classification of err, or an empty code.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ""
}
