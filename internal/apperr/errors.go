// Package apperr defines the error taxonomy shared by the provider clients,
// the aggregation services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need to pick a response status.
type Kind int

const (
	// KindValidation means a required identifier or query was missing or
	// unparsable. It is always raised before any network call.
	KindValidation Kind = iota + 1
	// KindUpstream means a provider answered with a non-success status or a
	// payload that could not be decoded.
	KindUpstream
	// KindNotFound means the provider reports that the entity does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is the concrete error type carried through the service layer.
type Error struct {
	Kind     Kind
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	prefix := e.Kind.String()
	if e.Provider != "" {
		prefix = e.Provider + " " + prefix
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	default:
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a validation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error for the given provider.
func NotFound(provider, format string, args ...any) error {
	return &Error{Kind: KindNotFound, Provider: provider, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a provider failure.
func Upstream(provider, message string, err error) error {
	return &Error{Kind: KindUpstream, Provider: provider, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsUpstream(err error) bool   { return KindOf(err) == KindUpstream }
