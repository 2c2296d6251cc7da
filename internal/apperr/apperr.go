// Package apperr defines the error taxonomy shared by services, repositories
// and HTTP handlers, and the mapping of each kind to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindDuplicate
	KindStorage
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindDuplicate:
		return "duplicate"
	case KindStorage:
		return "storage"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Status is the HTTP status a kind is rendered with.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
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

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) *Error   { return New(KindValidation, msg, nil) }
func NotFound(msg string) *Error     { return New(KindNotFound, msg, nil) }
func Unauthorized(msg string) *Error { return New(KindUnauthorized, msg, nil) }
func Forbidden(msg string) *Error    { return New(KindForbidden, msg, nil) }
func Duplicate(msg string) *Error    { return New(KindDuplicate, msg, nil) }
func RateLimited(msg string) *Error  { return New(KindRateLimited, msg, nil) }

// Storage wraps a failed backing-store call.
func Storage(msg string, err error) *Error { return New(KindStorage, msg, err) }

// KindOf reports the kind of err, or KindInternal for errors outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
