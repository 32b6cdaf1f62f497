package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindBadRequest
	KindAuth
	KindNotFound
	KindConflict
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBadRequest:
		return "bad_request"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDependency:
		return "dependency"
	default:
		return "internal"
	}
}

// FieldError is a single failed field rule.
type FieldError struct {
	Field   string
	Message string
}

// Error is the typed error returned by services. Message is safe to show to
// clients; Err holds the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Dependency(message string, err error) *Error {
	return &Error{Kind: KindDependency, Message: message, Err: err}
}

// KindOf reports the kind of err, or KindInternal if err carries none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
