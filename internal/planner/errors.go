package planner

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ConfigError ErrorKind = iota + 1
	RequestError
	UpstreamError
	ParseError
)

// ParseFailureMessage is what callers see when the model text holds no usable JSON.
const ParseFailureMessage = "Could not parse AI response"

func (k ErrorKind) String() string {
	switch k {
	case ConfigError:
		return "config"
	case RequestError:
		return "request"
	case UpstreamError:
		return "upstream"
	case ParseError:
		return "parse"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by everything in this package.
// Raw holds the model text for ParseError and is empty otherwise.
type Error struct {
	Kind    ErrorKind
	Message string
	Raw     string
	Err     error
}

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns 0 for errors that did not come from this package.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
