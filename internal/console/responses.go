package console

import (
	"time"

	claimModels "claimguard/internal/claims/models"
	"claimguard/internal/verification"
)

type ClaimResponse struct {
	ID                 string  `json:"id"`
	SubmitterID        string  `json:"submitter_id,omitempty"`
	SubmitterName      string  `json:"submitter_name,omitempty"`
	HospitalName       string  `json:"hospital_name"`
	ServiceDescription string  `json:"service_description"`
	Amount             float64 `json:"amount"`
	Status             string  `json:"status"`
	Verifying          bool    `json:"verifying"`
}

type ClaimListResponse struct {
	Claims []ClaimResponse `json:"claims"`
}

type SubmitResponse struct {
	Message string `json:"message"`
	Notice  string `json:"notice,omitempty"`
}

type VerdictResponse struct {
	ServiceCode string  `json:"service_code"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

type TransitionResponse struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// CycleResponse describes a finished cycle. Error fields are set only when
// the cycle ended in failed.
type CycleResponse struct {
	CycleID          string               `json:"cycle_id"`
	ClaimID          string               `json:"claim_id"`
	State            string               `json:"state"`
	Verdict          *VerdictResponse     `json:"verdict,omitempty"`
	Path             []string             `json:"path"`
	Transitions      []TransitionResponse `json:"transitions"`
	Notice           string               `json:"notice,omitempty"`
	DurationMS       int64                `json:"duration_ms"`
	Error            string               `json:"error,omitempty"`
	ErrorDescription string               `json:"error_description,omitempty"`
}

type AccountResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
	Action     string `json:"action"`
	Pending    bool   `json:"pending"`
}

type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

type ToggleResponse struct {
	AccountID  string `json:"account_id"`
	IsVerified bool   `json:"is_verified"`
	Message    string `json:"message"`
}

func toClaimResponse(c claimModels.Claim, verifying bool) ClaimResponse {
	return ClaimResponse{
		ID:                 c.ID.String(),
		SubmitterID:        c.Submitter.ID.String(),
		SubmitterName:      c.Submitter.Username,
		HospitalName:       c.HospitalName,
		ServiceDescription: c.ServiceDescription.String(),
		Amount:             c.Amount.Float64(),
		Status:             c.EffectiveStatus().String(),
		Verifying:          verifying,
	}
}

func toCycleResponse(c *verification.Cycle) CycleResponse {
	resp := CycleResponse{
		CycleID:     c.ID.String(),
		ClaimID:     c.ClaimID.String(),
		State:       string(c.State),
		Transitions: make([]TransitionResponse, 0, len(c.Transitions)),
		Path:        make([]string, 0, len(c.Transitions)+1),
		Notice:      c.Notice,
		DurationMS:  c.Duration().Milliseconds(),
	}
	if c.Verdict != nil {
		resp.Verdict = &VerdictResponse{
			ServiceCode: c.Verdict.ServiceCode,
			Label:       c.Verdict.Label.String(),
			Probability: c.Verdict.Probability,
		}
	}
	for _, st := range c.Path() {
		resp.Path = append(resp.Path, string(st))
	}
	for _, t := range c.Transitions {
		resp.Transitions = append(resp.Transitions, TransitionResponse{From: string(t.From), To: string(t.To), At: t.At})
	}
	return resp
}
