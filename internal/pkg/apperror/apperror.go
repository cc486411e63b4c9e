// Package apperror is the closed set of failures a handler can report.
// Every variant maps to exactly one HTTP status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
	KindUpstream
	KindUnavailable
)

// Machine readable codes sent in the "code" field.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeInvalidBody        = "INVALID_BODY"
	CodeInvalidID          = "INVALID_ID"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeMemberExists       = "MEMBER_EXISTS"
	CodeDuplicate          = "DUPLICATE"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS"
	CodeAIUnavailable      = "AI_UNAVAILABLE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status for the error's kind.
func (e *Error) Status() int {
	return e.Kind.Status()
}

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	case KindUpstream:
		return http.StatusBadGateway
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTooManyRequests:
		return "too_many_requests"
	case KindUpstream:
		return "upstream"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Validation(code, message string) *Error {
	if code == "" {
		code = CodeValidation
	}
	return New(KindValidation, code, message)
}

func Unauthenticated(code, message string) *Error {
	if code == "" {
		code = CodeUnauthorized
	}
	return New(KindUnauthenticated, code, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, CodeForbidden, message)
}

func NotFound(code, message string) *Error {
	if code == "" {
		code = CodeNotFound
	}
	return New(KindNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func TooManyRequests(message string) *Error {
	return New(KindTooManyRequests, CodeTooManyAttempts, message)
}

func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, CodeAIUnavailable, message, err)
}

func Unavailable(code, message string, err error) *Error {
	if code == "" {
		code = CodeServiceUnavailable
	}
	return Wrap(KindUnavailable, code, message, err)
}

func Internal(err error) *Error {
	return Wrap(KindInternal, CodeInternal, "Internal server error", err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
