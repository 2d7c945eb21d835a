package domainerrors

import "errors"

// Code names a failure class. Transports map codes to their own status
// vocabulary; see pkg/platform/httputil for the console mapping.
type Code string

const (
	CodeNotFound           Code = "not_found"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_failed"
	CodeInternal           Code = "internal_error"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeTimeout            Code = "timeout"
	CodeInvariantViolation Code = "invariant_violation"

	// Verification workflow failures. Each one aborts only the cycle that raised it.
	CodeScoringUnavailable Code = "scoring_unavailable" // scorer unreachable or timed out
	CodeScoringRejected    Code = "scoring_rejected"    // scorer answered without a usable verdict
	CodePersistFailed      Code = "persist_failed"      // backend refused the status write
	CodeRefreshFailed      Code = "refresh_failed"      // read-back failed after a persisted mutation
	CodeToggleFailed       Code = "toggle_failed"       // backend refused the account toggle
	CodeCycleInFlight      Code = "cycle_in_flight"     // a cycle for the same record is still running
)

// Error is a coded failure. Message is safe to show an operator; Err keeps
// the underlying cause for logs.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New returns a coded error without a cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches msg to err. A code already present in the chain wins over
// code, so lower layers keep their classification.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// Reclassify wraps err under code regardless of any code already in the chain.
// Used where a workflow step owns the meaning of every failure it surfaces.
func Reclassify(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the outermost domain code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
