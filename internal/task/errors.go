package task

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFieldType means a raw value could not be coerced to its declared type.
	ErrInvalidFieldType = errors.New("invalid field type")
	// ErrMutexViolation means both sides of a mutex pair were populated.
	ErrMutexViolation = errors.New("mutually exclusive fields")
	// ErrUnknownField means a raw field is not declared by the kind.
	ErrUnknownField = errors.New("unknown field")
)

// FieldTypeError reports a coercion failure.
type FieldTypeError struct {
	Kind   string
	Field  string
	Want   string
	Value  any
	Reason string
}

func (e *FieldTypeError) Error() string {
	msg := fmt.Sprintf("task kind %s: field %q: expected %s, got %T(%v)", e.Kind, e.Field, e.Want, e.Value, e.Value)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *FieldTypeError) Unwrap() error {
	return ErrInvalidFieldType
}

// MutexError reports a populated mutex pair.
type MutexError struct {
	Kind   string
	FieldA string
	FieldB string
}

func (e *MutexError) Error() string {
	return fmt.Sprintf("task kind %s: fields %q and %q cannot both be set", e.Kind, e.FieldA, e.FieldB)
}

func (e *MutexError) Unwrap() error {
	return ErrMutexViolation
}
