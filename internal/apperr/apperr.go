// Package apperr defines the error taxonomy shared by all services and maps
// it to HTTP statuses at the handler boundary. Services raise these at the
// point of detection; handlers translate them without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	// KindBadValues covers malformed or missing input.
	KindBadValues Kind = iota

	// KindUnauthorized covers missing or invalid credentials/sessions.
	KindUnauthorized

	// KindNotAllowed covers acting on another's resource or peer-directed
	// actions without a friend edge.
	KindNotAllowed

	// KindNotFound covers absent entities, sessions, or records.
	KindNotFound

	// KindAlreadyExists covers duplicates and conflicting state transitions.
	KindAlreadyExists
)

// Error is a kinded error carrying a user-facing message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func BadValues(format string, args ...any) *Error {
	return &Error{Kind: KindBadValues, Msg: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

func NotAllowed(format string, args ...any) *Error {
	return &Error{Kind: KindNotAllowed, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func AlreadyExists(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyExists, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an apperr.Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps an error to the status code the API boundary should emit.
// Unwrapped store errors fall through to 500, except record-not-found which
// surfaces as 404.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindBadValues:
			return http.StatusBadRequest
		case KindUnauthorized:
			return http.StatusUnauthorized
		case KindNotAllowed:
			return http.StatusForbidden
		case KindNotFound:
			return http.StatusNotFound
		case KindAlreadyExists:
			return http.StatusConflict
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
