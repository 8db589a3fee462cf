// Package apperr holds the typed error kinds returned by services.
// Controllers translate them into HTTP responses through helper.FromServiceError.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindInvalidInput Kind = "INVALID_INPUT"
	KindConflict     Kind = "CONFLICT"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// Is membuat errors.Is(err, apperr.ErrForbidden) cocok untuk semua *Error dengan kind yang sama.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	ErrConflict     = &Error{Kind: KindConflict}
)

func newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error    { return newf(KindForbidden, format, args...) }
func NotFound(format string, args ...any) error     { return newf(KindNotFound, format, args...) }
func InvalidInput(format string, args ...any) error { return newf(KindInvalidInput, format, args...) }
func Conflict(format string, args ...any) error     { return newf(KindConflict, format, args...) }

// KindOf mengembalikan kind dari err (menembus wrapping).
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// MessageOf: pesan untuk user; kosong kalau bukan *Error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
