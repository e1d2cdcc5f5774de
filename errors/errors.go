package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"strings"
)

// Kind classifies an error so callers can map it to a response or a
// consumer decision without matching on messages.
type Kind uint8

const (
	Other             Kind = iota // Unclassified error.
	Invalid                       // Client-correctable input.
	NotExist                      // Entity does not exist.
	InvalidTransition             // Status change not allowed by the state machine.
	Store                         // Relational store failure.
	Publish                       // Broker publish failure.
	Decode                        // Undecodable message payload.
	Internal                      // Any other infrastructure failure.
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotExist:
		return "not exist"
	case InvalidTransition:
		return "invalid transition"
	case Store:
		return "store"
	case Publish:
		return "publish"
	case Decode:
		return "decode"
	case Internal:
		return "internal"
	}
	return "other"
}

// Error is the error type returned by every package of this module.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// E builds an *Error. err may be nil.
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return Other
		}
		if e.Kind != Other {
			return e.Kind
		}
		err = e.Err
	}
	return Other
}

// Is reports whether err is classified as kind.
func Is(kind Kind, err error) bool {
	return err != nil && KindOf(err) == kind
}

// Validation returns the validation list carried by err, if any.
func Validation(err error) (*ValidationErrors, bool) {
	var ve *ValidationErrors
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
