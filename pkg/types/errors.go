// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the capture engine and the bookmark
// store can report. Callers branch on the kind, never on message text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfiguration
	KindNotFound
	KindAlreadyExists
	KindInvalidInput
	KindIO
	KindAlreadyProduced
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindInvalidInput:
		return "invalid input"
	case KindIO:
		return "i/o error"
	case KindAlreadyProduced:
		return "snippet already produced"
	default:
		return "unknown error"
	}
}

// Error carries a kind, the operation that failed, a short diagnostic
// payload (the offending name, path or interval) and an optional cause.
type Error struct {
	Kind   ErrorKind
	Op     string
	Detail string
	Err    error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrConfiguration   = &Error{Kind: KindConfiguration}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrAlreadyExists   = &Error{Kind: KindAlreadyExists}
	ErrInvalidInput    = &Error{Kind: KindInvalidInput}
	ErrIO              = &Error{Kind: KindIO}
	ErrAlreadyProduced = &Error{Kind: KindAlreadyProduced}
)

// NewError builds an *Error; cause may be nil.
func NewError(kind ErrorKind, op, detail string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail, Err: cause}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IOError wraps an underlying file or database failure.
func IOError(op string, err error) error {
	return NewError(KindIO, op, "", err)
}

// InvalidInputf builds a KindInvalidInput error with a formatted detail.
func InvalidInputf(op, format string, args ...any) error {
	return NewError(KindInvalidInput, op, fmt.Sprintf(format, args...), nil)
}
