package queueing

import (
	"errors"
	"fmt"
)

// Kind classifies why a request could not be solved.
type Kind string

const (
	// KindValidation marks malformed or out-of-domain parameters.
	KindValidation Kind = "validation"
	// KindStability marks well-formed parameters that violate the model's ergodicity condition.
	KindStability Kind = "stability"
	// KindDomain marks a conditional query outside the model's valid range.
	KindDomain Kind = "domain"
	// KindInternal marks an arithmetic fault that validation should have prevented.
	KindInternal Kind = "internal"
)

// Error is the single error type returned by the engine.
type Error struct {
	Kind    Kind   `json:"kind"`
	Model   Model  `json:"model,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("%s error (%s): %s", e.Kind, e.Model, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: KindStability}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Model == "" || t.Model == e.Model)
}

// KindOf extracts the error kind, treating anything foreign as internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindInternal
}

func validationErr(m Model, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Model: m, Message: fmt.Sprintf(format, args...)}
}

func stabilityErr(m Model, condition string) *Error {
	return &Error{Kind: KindStability, Model: m, Message: "system is unstable, " + condition}
}

func domainErr(m Model, format string, args ...any) *Error {
	return &Error{Kind: KindDomain, Model: m, Message: fmt.Sprintf(format, args...)}
}

func internalErr(m Model, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Model: m, Message: fmt.Sprintf(format, args...)}
}
