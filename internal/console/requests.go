package console

import dErrors "claimguard/pkg/domain-errors"

// ToggleRequest carries the flag the operator saw when they clicked.
type ToggleRequest struct {
	CurrentFlag *bool `json:"currentFlag"`
}

func (r *ToggleRequest) Validate() error {
	if r.CurrentFlag == nil {
		return dErrors.New(dErrors.CodeValidation, "currentFlag is required")
	}
	return nil
}
