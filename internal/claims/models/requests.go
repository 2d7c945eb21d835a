package models

import (
	"strings"

	"claimguard/pkg/validation"
)

// Normalize trims user-entered text.
func (r *SubmitRequest) Normalize() {
	if r == nil {
		return
	}
	r.HospitalName = strings.TrimSpace(r.HospitalName)
	r.ServiceDescription = strings.TrimSpace(r.ServiceDescription)
}

// Validate checks the form fields; the amount must also be finite.
func (r *SubmitRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	return Amount(r.Amount).Validate()
}
