package upstream

import (
	"errors"
	"fmt"

	dErrors "claimguard/pkg/domain-errors"
)

// Category is the normalized failure taxonomy for calls to remote services.
//
// Both the authoritative backend and the scoring service are classified into
// these categories so that workflow code decides on one vocabulary instead of
// raw status codes and transport errors.
type Category string

const (
	// CategoryTimeout indicates the service did not answer before the deadline
	CategoryTimeout Category = "timeout"

	// CategoryOutage indicates the service is unreachable or reported itself unavailable
	CategoryOutage Category = "outage"

	// CategoryBadData indicates the request was refused as malformed
	CategoryBadData Category = "bad_data"

	// CategoryAuthentication indicates the session token was refused
	CategoryAuthentication Category = "authentication"

	// CategoryNotFound indicates the addressed record does not exist
	CategoryNotFound Category = "not_found"

	// CategoryConflict indicates a concurrent modification on the server
	CategoryConflict Category = "conflict"

	// CategoryRateLimited indicates too many requests
	CategoryRateLimited Category = "rate_limited"

	// CategoryContractMismatch indicates a response body that does not match the agreed shape
	CategoryContractMismatch Category = "contract_mismatch"

	// CategoryInternal indicates an unexpected failure
	CategoryInternal Category = "internal"
)

// Error wraps a remote call failure with its normalized category.
type Error struct {
	Category Category
	Service  string // "backend" or "scoring"
	Message  string
	Status   int // HTTP status when the server answered, zero otherwise
	Err      error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Service, e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Service, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure is of the kind that may clear up on
// its own. Nothing in this module retries automatically; the flag only shapes
// the message shown to the operator.
func (e *Error) Transient() bool {
	return e.Category == CategoryTimeout ||
		e.Category == CategoryOutage ||
		e.Category == CategoryRateLimited
}

// NewError creates a categorized upstream error.
func NewError(category Category, service, message string, err error) *Error {
	return &Error{
		Category: category,
		Service:  service,
		Message:  message,
		Err:      err,
	}
}

// CategoryOf extracts the category from an error, defaulting to CategoryInternal.
func CategoryOf(err error) Category {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Category
	}
	return CategoryInternal
}

// IsTransient reports whether err is a transient upstream failure.
func IsTransient(err error) bool {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Transient()
	}
	return false
}

// ToDomain translates an upstream failure into a coded domain error for
// callers that have no workflow-specific code of their own. The server's
// message is kept when it is meant for the user.
func ToDomain(err error, msg string) error {
	if err == nil {
		return nil
	}
	var ue *Error
	if !errors.As(err, &ue) {
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
	switch ue.Category {
	case CategoryTimeout:
		return dErrors.Reclassify(err, dErrors.CodeTimeout, msg)
	case CategoryBadData:
		return dErrors.Reclassify(err, dErrors.CodeBadRequest, ue.Message)
	case CategoryAuthentication:
		return dErrors.Reclassify(err, dErrors.CodeUnauthorized, msg)
	case CategoryNotFound:
		return dErrors.Reclassify(err, dErrors.CodeNotFound, ue.Message)
	case CategoryConflict:
		return dErrors.Reclassify(err, dErrors.CodeConflict, ue.Message)
	default:
		return dErrors.Reclassify(err, dErrors.CodeInternal, msg)
	}
}
