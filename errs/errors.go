package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide between retrying,
// correcting input, or giving up.
type Kind string

const (
	Configuration     Kind = "configuration_error"
	InvalidInput      Kind = "invalid_input"
	TemplateNotFound  Kind = "template_not_found"
	Transient         Kind = "transient_error"
	Auth              Kind = "auth_error"
	Quota             Kind = "quota_error"
	MalformedResponse Kind = "malformed_response"
	// Internal is reported for errors that were never classified.
	Internal Kind = "internal_error"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
	// Raw holds the model response that could not be used, if any.
	Raw string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewMalformed keeps the raw model output for diagnostics.
func NewMalformed(message string, raw string) *Error {
	return &Error{Kind: MalformedResponse, Message: message, Raw: raw}
}

// KindOf returns the kind of the outermost *Error in the chain, or "" when
// err carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Raw returns the raw model response attached to err, if any.
func Raw(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Raw
	}
	return ""
}

// Retryable reports whether a single further generation attempt may fix err.
func Retryable(err error) bool {
	switch KindOf(err) {
	case Transient, MalformedResponse:
		return true
	}
	return false
}

// Wrap prefixes message while keeping the kind of an already classified
// error; unclassified errors get kind.
func Wrap(err error, message string, kind Kind) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return &Error{Kind: e.Kind, Message: message, Err: err, Raw: e.Raw}
	}
	return New(kind, message, err)
}
