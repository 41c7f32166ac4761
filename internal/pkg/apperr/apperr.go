// Package apperr defines the error taxonomy shared by every layer of the
// service. Errors are created once where the failure is understood and then
// bubble up unchanged to the HTTP boundary, which renders them.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindUnhandled Kind = iota
	KindNotFound
	KindAlreadyExists
	KindValidation
	KindServiceUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindValidation:
		return "validation_error"
	case KindServiceUnavailable:
		return "service_unavailable"
	default:
		return "unhandled"
	}
}

// Status is the HTTP status code an error of this kind is rendered with.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FieldError points at the offending input of a validation failure.
type FieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, f := range e.Fields {
		fmt.Fprintf(&sb, "; %s: %s", strings.Join(f.Loc, "."), f.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound)
// works regardless of message or cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil && len(t.Fields) == 0
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrAlreadyExists      = &Error{Kind: KindAlreadyExists}
	ErrValidation         = &Error{Kind: KindValidation}
	ErrServiceUnavailable = &Error{Kind: KindServiceUnavailable}
	ErrUnhandled          = &Error{Kind: KindUnhandled}
)

func NotFound(msg string, err error) *Error {
	if msg == "" {
		msg = "requested resource is not found"
	}
	return &Error{Kind: KindNotFound, Message: msg, Err: err}
}

func AlreadyExists(msg string, err error) *Error {
	if msg == "" {
		msg = "resource already exists"
	}
	return &Error{Kind: KindAlreadyExists, Message: msg, Err: err}
}

func ServiceUnavailable(msg string, err error) *Error {
	if msg == "" {
		msg = "required service is unavailable"
	}
	return &Error{Kind: KindServiceUnavailable, Message: msg, Err: err}
}

func Unhandled(msg string, err error) *Error {
	if msg == "" {
		msg = "unexpected error"
	}
	return &Error{Kind: KindUnhandled, Message: msg, Err: err}
}

// Validation reports a single malformed field. loc is the path to it,
// e.g. "body", "base64".
func Validation(msg string, loc ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation error",
		Fields:  []FieldError{{Loc: loc, Msg: msg}},
	}
}

// Validations reports several malformed fields at once.
func Validations(fields []FieldError, err error) *Error {
	return &Error{Kind: KindValidation, Message: "validation error", Fields: fields, Err: err}
}

// As extracts the *Error from err or wraps err as Unhandled.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unhandled("", err)
}
