package errors

import (
	"fmt"
	"math"
	"strings"
)

// FieldError names a single invalid configuration field.
type FieldError struct {
	Field  string
	Reason string
}

func (f FieldError) String() string { return f.Field + ": " + f.Reason }

// ValidationError collects every invalid field found while checking a
// configuration record, so callers can report all problems at once.
//
// The zero value is ready to use:
//
//	var v errors.ValidationError
//	v.Code = errors.ErrCodeInvalidGeometry
//	v.Positive("shelf.width", g.Shelf.Width)
//	return v.Err()
type ValidationError struct {
	Code   Code
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.summary())
}

// Unwrap exposes the code as an *Error so Is, GetCode and UserMessage work on
// validation errors.
func (e *ValidationError) Unwrap() error {
	return &Error{Code: e.Code, Message: e.summary()}
}

func (e *ValidationError) summary() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

// Add records an invalid field.
func (e *ValidationError) Add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// Positive records field as invalid unless value is a finite number > 0.
func (e *ValidationError) Positive(field string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		e.Add(field, "must be positive (got %g)", value)
	}
}

// NonNegative records field as invalid unless value is a finite number >= 0.
func (e *ValidationError) NonNegative(field string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		e.Add(field, "must not be negative (got %g)", value)
	}
}

// Err returns e when at least one field was recorded, nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
