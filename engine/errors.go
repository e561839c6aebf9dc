package engine

import (
	"errors"
	"go_fast_split/progress"
)

// Kind classifies fatal job failures
type Kind int

const (
	KindUnknown Kind = iota
	KindInsufficientSpace
	KindUnsupportedPartSize
	KindPartSizeTooSmall
	KindSourceOpenFailure
	KindDestinationCreateFailure
	KindSizeMismatch
	KindInvalidPattern
	KindCanceled
)

var kindNames = map[Kind]string{
	KindUnknown:                  "unknown failure",
	KindInsufficientSpace:        "insufficient space",
	KindUnsupportedPartSize:      "unsupported part size",
	KindPartSizeTooSmall:         "part size too small",
	KindSourceOpenFailure:        "source open failure",
	KindDestinationCreateFailure: "destination create failure",
	KindSizeMismatch:             "size mismatch",
	KindInvalidPattern:           "invalid name pattern",
	KindCanceled:                 "canceled",
}

var kindCodes = map[Kind]progress.Code{
	KindInsufficientSpace:        progress.CodeInsufficientSpace,
	KindUnsupportedPartSize:      progress.CodeUnsupportedPartSize,
	KindPartSizeTooSmall:         progress.CodePartSizeTooSmall,
	KindSourceOpenFailure:        progress.CodeSourceOpen,
	KindDestinationCreateFailure: progress.CodeDestinationCreate,
	KindSizeMismatch:             progress.CodeSizeMismatch,
	KindInvalidPattern:           progress.CodeInvalidPattern,
	KindCanceled:                 progress.CodeCanceled,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// Code returns the message code reported for this kind
func (k Kind) Code() progress.Code {
	return kindCodes[k]
}

// Error is returned for every fatal job failure
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Sentinels for errors.Is.
var (
	ErrInsufficientSpace        = &Error{Kind: KindInsufficientSpace}
	ErrUnsupportedPartSize      = &Error{Kind: KindUnsupportedPartSize}
	ErrPartSizeTooSmall         = &Error{Kind: KindPartSizeTooSmall}
	ErrSourceOpenFailure        = &Error{Kind: KindSourceOpenFailure}
	ErrDestinationCreateFailure = &Error{Kind: KindDestinationCreateFailure}
	ErrSizeMismatch             = &Error{Kind: KindSizeMismatch}
	ErrInvalidPattern           = &Error{Kind: KindInvalidPattern}
	ErrCanceled                 = &Error{Kind: KindCanceled}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Path == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf extracts kind from err
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
