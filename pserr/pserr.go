// Package pserr defines the fatal error taxonomy used throughout pstops.
// Fatal errors of the tool carry one of these kinds and a one-line
// diagnostic; option errors append the multi-line usage text after it.
package pserr

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a fatal pstops error.
type Kind int

const (
	// KindArgument covers malformed dimensions, empty numeric arguments,
	// unknown paper names, and a nonpositive -N/-n value.
	KindArgument Kind = iota + 1

	// KindConfig covers paper size unset, margins exceeding the sheet, and
	// a w/h unit referenced before output dimensions are known.
	KindConfig

	// KindLayout covers "no layout meets tolerance".
	KindLayout

	// KindIO covers unseekable/unspoolable input, short reads/writes, and
	// a malformed %%Page: comment encountered while seeking.
	KindIO

	// KindOOM covers allocation failure growing the page table or spec list.
	KindOOM
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindConfig:
		return "config"
	case KindLayout:
		return "layout"
	case KindIO:
		return "io"
	case KindOOM:
		return "oom"
	default:
		return "unknown"
	}
}

// Error is a pstops fatal error: a kind, a human message, and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pstops: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("pstops: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind that wraps an underlying cause.
// The cause is captured via github.com/pkg/errors.WithStack so a debug
// build can print the full causal chain with "%+v" while the default
// "%v"/Error() rendering stays a single line.
func Wrap(kind Kind, err error, context string) *Error {
	return &Error{Kind: kind, Message: context, Err: pkgerrors.WithStack(err)}
}

// Is reports whether err is a pstops Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
