package engine

import (
	"errors"
	"fmt"
)

// ErrorKind is the failure class of an engine error.
type ErrorKind string

const (
	// KindData is missing or invalid reference data. Inside a round it is
	// recovered with defaults and a data_warning event; at battle creation
	// it rejects the request.
	KindData ErrorKind = "data_error"
	// KindValidation is an invalid submission. Only that action is rejected.
	KindValidation ErrorKind = "validation_error"
	// KindInvariant is a broken battle state. The battle refuses to proceed.
	KindInvariant ErrorKind = "invariant_violation"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeMissingReference Code = "missing_reference"
	CodeInvalidSnapshot  Code = "invalid_snapshot"

	CodeInvalidTarget    Code = "invalid_target"
	CodeNotAllowed       Code = "not_allowed"
	CodeAlreadySubmitted Code = "already_submitted"
	CodeInvalidSlot      Code = "invalid_slot"
	CodeNotActive        Code = "not_active"
	CodeUnknownMove      Code = "unknown_move"
	CodeUnknownAction    Code = "unknown_action"
	CodeWrongPhase       Code = "wrong_phase"
	CodeBattleEnded      Code = "battle_ended"
	CodeRoundIncomplete  Code = "round_incomplete"

	CodeStageOutOfBounds Code = "stage_out_of_bounds"
	CodeHPOutOfRange     Code = "hp_out_of_range"
	CodeDuplicateSlot    Code = "duplicate_slot"
	CodeEmptySide        Code = "empty_side"
)

// Error is the engine's structured error.
type Error struct {
	Kind    ErrorKind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind) + ": " + string(e.Code)
	}
	return string(e.Kind) + ": " + string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches by code so callers can use errors.Is with the sentinels below.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func newError(kind ErrorKind, code Code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func dataError(code Code, format string, args ...any) *Error {
	return newError(KindData, code, format, args...)
}

func validationError(code Code, format string, args ...any) *Error {
	return newError(KindValidation, code, format, args...)
}

func invariantError(code Code, format string, args ...any) *Error {
	return newError(KindInvariant, code, format, args...)
}

// Sentinels for errors.Is.
var (
	ErrMissingReference = &Error{Kind: KindData, Code: CodeMissingReference}
	ErrInvalidSnapshot  = &Error{Kind: KindValidation, Code: CodeInvalidSnapshot}
	ErrInvalidTarget    = &Error{Kind: KindValidation, Code: CodeInvalidTarget}
	ErrNotAllowed       = &Error{Kind: KindValidation, Code: CodeNotAllowed}
	ErrAlreadySubmitted = &Error{Kind: KindValidation, Code: CodeAlreadySubmitted}
	ErrInvalidSlot      = &Error{Kind: KindValidation, Code: CodeInvalidSlot}
	ErrNotActive        = &Error{Kind: KindValidation, Code: CodeNotActive}
	ErrUnknownMove      = &Error{Kind: KindValidation, Code: CodeUnknownMove}
	ErrUnknownAction    = &Error{Kind: KindValidation, Code: CodeUnknownAction}
	ErrWrongPhase       = &Error{Kind: KindValidation, Code: CodeWrongPhase}
	ErrBattleEnded      = &Error{Kind: KindValidation, Code: CodeBattleEnded}
	ErrRoundIncomplete  = &Error{Kind: KindValidation, Code: CodeRoundIncomplete}
)

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
