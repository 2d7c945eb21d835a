package validation

import (
	"fmt"

	dErrors "claimguard/pkg/domain-errors"
)

// MaxBodySize caps console request bodies (64 KB).
const MaxBodySize = 64 * 1024

// MaxIDLength bounds claim and account identifiers taken from URLs.
const MaxIDLength = 64

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}
