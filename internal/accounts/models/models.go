// Package models holds the account records the admin console caches.
package models

import (
	"strings"

	dErrors "claimguard/pkg/domain-errors"
	limits "claimguard/pkg/platform/validation"
)

// AccountID is the backend's opaque account identifier.
type AccountID string

func (id AccountID) String() string { return string(id) }

// ParseAccountID validates an identifier taken from an untrusted source.
func ParseAccountID(s string) (AccountID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "account ID cannot be empty")
	}
	if err := limits.CheckStringLength("account ID", s, limits.MaxIDLength); err != nil {
		return "", err
	}
	return AccountID(s), nil
}

// Account is one organiser account as served by the backend.
// The verified flag only changes through an explicit toggle.
type Account struct {
	ID         AccountID `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
}

// Verb names the action a toggle of an account with this flag performs.
func Verb(isVerified bool) string {
	if isVerified {
		return "unverify"
	}
	return "verify"
}

// PastTense is the completed form of Verb.
func PastTense(isVerified bool) string {
	if isVerified {
		return "unverified"
	}
	return "verified"
}
