package models

import (
	"encoding/json"
	"strings"
)

// Status is the server-assigned verification label of a claim.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusLegitimate Status = "Legitimate"
	StatusFraudulent Status = "Fraudulent"
)

// IsVerdict reports whether s is a label the scorer can produce.
func (s Status) IsVerdict() bool {
	return s == StatusLegitimate || s == StatusFraudulent
}

func (s Status) String() string { return string(s) }

// ParseVerdictLabel maps a scorer prediction onto a verdict label. The scorer
// answers "Fraud"/"Non-Fraud"; canonical labels are accepted as well.
// "Invalid Service Code" and anything else yields false.
func ParseVerdictLabel(prediction string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(prediction)) {
	case "fraud", "fraudulent":
		return StatusFraudulent, true
	case "non-fraud", "legitimate":
		return StatusLegitimate, true
	default:
		return "", false
	}
}

// NormalizeStatus maps a stored label onto the canonical label space.
// Older records hold the scorer's raw prediction; unknown labels are kept
// verbatim so the operator still sees what the server holds.
func NormalizeStatus(raw string) Status {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, string(StatusPending)) {
		return StatusPending
	}
	if label, ok := ParseVerdictLabel(raw); ok {
		return label
	}
	return Status(raw)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = StatusPending
		return nil
	}
	*s = NormalizeStatus(*raw)
	return nil
}
