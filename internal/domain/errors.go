package domain

import "errors"

// Kind classifies service errors so transports can map them to a status
// representation without string matching.
type Kind int

const (
	// KindNotFound: the referenced quiz, room, or player does not exist.
	KindNotFound Kind = iota + 1
	// KindInvalidOperation: the request is well-formed but illegal in the
	// room's current phase.
	KindInvalidOperation
	// KindValidation: the input itself is unacceptable regardless of phase.
	KindValidation
)

// Error is a recoverable service error. Anything that is not an *Error is
// an internal defect and should surface as a generic failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func InvalidOperation(msg string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf returns the kind of err, or 0 when err is not a service error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
