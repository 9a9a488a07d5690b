// Package errors provides the coded error type shared by shelfmount's
// packages, CLI and HTTP API.
//
// Geometric infeasibility is not an error: the solver reports it in its
// result. Only invalid configuration, unparseable input and collaborator
// failures become errors.
//
//	err := errors.New(errors.ErrCodeInvalidGeometry, "shelf width must be positive")
//	if errors.Is(err, errors.ErrCodeInvalidGeometry) { ... }
//
//	err = errors.Wrap(errors.ErrCodeStorage, cause, "save favorite %s", id)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidSpacing  Code = "INVALID_SPACING"
	ErrCodeInvalidPolicy   Code = "INVALID_POLICY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidView     Code = "INVALID_VIEW"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeUnparseableLength Code = "UNPARSEABLE_LENGTH"

	ErrCodeNotFound Code = "NOT_FOUND"

	ErrCodeStorage     Code = "STORAGE_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeUnsupported Code = "UNSUPPORTED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// IsInput reports whether the code blames the caller's input: INVALID_* and
// UNPARSEABLE_* codes.
func (c Code) IsInput() bool {
	return strings.HasPrefix(string(c), "INVALID_") || strings.HasPrefix(string(c), "UNPARSEABLE_")
}

// Error carries a code, a message for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether any *Error in err's chain has code. A config error
// wrapping a length parse failure is both INVALID_CONFIG and
// UNPARSEABLE_LENGTH.
func Is(err error, code Code) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the outermost *Error's message without its code, or
// err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
