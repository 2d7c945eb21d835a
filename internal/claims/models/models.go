// Package models holds the claim records the console caches and the values
// the verification workflow passes between its steps.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	dErrors "claimguard/pkg/domain-errors"
	limits "claimguard/pkg/platform/validation"
)

// ClaimID is the backend's opaque claim identifier.
type ClaimID string

// UserID is the backend's opaque user identifier.
type UserID string

func (id ClaimID) String() string { return string(id) }
func (id UserID) String() string  { return string(id) }

// ParseClaimID validates an identifier taken from an untrusted source.
func ParseClaimID(s string) (ClaimID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "claim ID cannot be empty")
	}
	if err := limits.CheckStringLength("claim ID", s, limits.MaxIDLength); err != nil {
		return "", err
	}
	return ClaimID(s), nil
}

// Submitter identifies the patient who filed a claim.
// The list-all endpoint populates it as {_id, username}; the owner endpoint
// returns the bare id.
type Submitter struct {
	ID       UserID `json:"_id"`
	Username string `json:"username,omitempty"`
}

func (s *Submitter) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Submitter{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*s = Submitter{ID: UserID(id)}
		return nil
	}
	type plain Submitter
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Submitter(p)
	return nil
}

// Amount is a non-negative paid amount. The backend stores what the form
// posted, so it decodes from either a JSON number or a numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q is not a number", s)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Float64 returns the amount as a float64.
func (a Amount) Float64() float64 { return float64(a) }

// Validate rejects amounts the scorer must never see.
func (a Amount) Validate() error {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return dErrors.New(dErrors.CodeValidation, "amount must be a finite number")
	}
	if f < 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must not be negative")
	}
	return nil
}

// Claim is one claim record as served by the backend.
type Claim struct {
	ID                 ClaimID            `json:"_id"`
	Submitter          Submitter          `json:"userId"`
	HospitalName       string             `json:"hospitalName"`
	ServiceDescription ServiceDescription `json:"serviceDescription"`
	Amount             Amount             `json:"amount"`
	Status             Status             `json:"status"`
}

// EffectiveStatus treats an absent status as Pending.
func (c Claim) EffectiveStatus() Status {
	if c.Status == "" {
		return StatusPending
	}
	return c.Status
}

// Verdict is the scorer's answer for one claim. It is handed straight to the
// status write and never cached.
type Verdict struct {
	ServiceCode string
	Label       Status
	Probability float64
}

// SubmitRequest is a new claim filed by the session's user.
type SubmitRequest struct {
	HospitalName       string  `json:"hospitalName" validate:"notblank,max=200"`
	ServiceDescription string  `json:"serviceDescription" validate:"required,service_description"`
	Amount             float64 `json:"amount" validate:"gte=0"`
}
