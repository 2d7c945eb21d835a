package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "claimguard/pkg/domain-errors"
)

func TestClaimDecoding(t *testing.T) {
	t.Run("populated submitter from the list-all endpoint", func(t *testing.T) {
		raw := `{
			"_id": "65f0c1",
			"userId": {"_id": "u-1", "username": "alice"},
			"hospitalName": "St. Mary",
			"serviceDescription": "Blood test, clotting time",
			"amount": 120,
			"status": "Legitimate"
		}`
		var c Claim
		require.NoError(t, json.Unmarshal([]byte(raw), &c))

		assert.Equal(t, ClaimID("65f0c1"), c.ID)
		assert.Equal(t, Submitter{ID: "u-1", Username: "alice"}, c.Submitter)
		assert.Equal(t, ServiceClottingTime, c.ServiceDescription)
		assert.Equal(t, Amount(120), c.Amount)
		assert.Equal(t, StatusLegitimate, c.Status)
	})

	t.Run("bare submitter id and string amount from the owner endpoint", func(t *testing.T) {
		raw := `{"_id": "c2", "userId": "u-2", "amount": " 99.5 ", "serviceDescription": "X-ray of chest, 2 views, front and side"}`
		var c Claim
		require.NoError(t, json.Unmarshal([]byte(raw), &c))

		assert.Equal(t, Submitter{ID: "u-2"}, c.Submitter)
		assert.InDelta(t, 99.5, c.Amount.Float64(), 0.0001)
		assert.Equal(t, Status(""), c.Status)
		assert.Equal(t, StatusPending, c.EffectiveStatus())
	})

	t.Run("null status and submitter", func(t *testing.T) {
		var c Claim
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"c3","userId":null,"status":null}`), &c))
		assert.Equal(t, StatusPending, c.Status)
		assert.Equal(t, Submitter{}, c.Submitter)
	})

	t.Run("legacy raw predictions are normalized", func(t *testing.T) {
		var c Claim
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"c4","status":"Non-Fraud"}`), &c))
		assert.Equal(t, StatusLegitimate, c.Status)

		require.NoError(t, json.Unmarshal([]byte(`{"_id":"c5","status":"Fraud"}`), &c))
		assert.Equal(t, StatusFraudulent, c.Status)
	})

	t.Run("non-numeric amount string fails", func(t *testing.T) {
		var c Claim
		assert.Error(t, json.Unmarshal([]byte(`{"_id":"c6","amount":"lots"}`), &c))
	})
}

func TestParseVerdictLabel(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"Fraud", StatusFraudulent, true},
		{"Fraudulent", StatusFraudulent, true},
		{" non-fraud ", StatusLegitimate, true},
		{"Legitimate", StatusLegitimate, true},
		{"Invalid Service Code", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseVerdictLabel(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNormalizeStatusKeepsUnknownLabels(t *testing.T) {
	assert.Equal(t, StatusPending, NormalizeStatus(""))
	assert.Equal(t, StatusPending, NormalizeStatus("pending"))
	assert.Equal(t, Status("Escalated"), NormalizeStatus("Escalated"))
}

func TestAmountValidate(t *testing.T) {
	assert.NoError(t, Amount(0).Validate())
	assert.NoError(t, Amount(120).Validate())
	assert.True(t, dErrors.HasCode(Amount(-1).Validate(), dErrors.CodeValidation))
	assert.Error(t, Amount(math.NaN()).Validate())
	assert.Error(t, Amount(math.Inf(1)).Validate())
}

func TestParseServiceDescription(t *testing.T) {
	d, err := ParseServiceDescription("  Blood test, clotting time ")
	require.NoError(t, err)
	assert.Equal(t, ServiceClottingTime, d)

	_, err = ParseServiceDescription("blood test, clotting time")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = ParseServiceDescription("")
	assert.Error(t, err)

	assert.Len(t, Catalog, 6)
}

func TestParseClaimID(t *testing.T) {
	id, err := ParseClaimID(" c1 ")
	require.NoError(t, err)
	assert.Equal(t, ClaimID("c1"), id)

	_, err = ParseClaimID("  ")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestSubmitRequest(t *testing.T) {
	t.Run("normalizes and accepts catalog service", func(t *testing.T) {
		req := &SubmitRequest{
			HospitalName:       "  General  ",
			ServiceDescription: " CT scan of heart blood vessels and grafts with contrast dye ",
			Amount:             450,
		}
		req.Normalize()
		require.NoError(t, req.Validate())
		assert.Equal(t, "General", req.HospitalName)
	})

	t.Run("rejects unknown service", func(t *testing.T) {
		req := &SubmitRequest{HospitalName: "General", ServiceDescription: "Massage", Amount: 10}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "serviceDescription is not a recognized service", err.Error())
	})

	t.Run("rejects infinite amount", func(t *testing.T) {
		req := &SubmitRequest{HospitalName: "General", ServiceDescription: string(ServiceChestXRay), Amount: math.Inf(1)}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects blank hospital", func(t *testing.T) {
		req := &SubmitRequest{HospitalName: " ", ServiceDescription: string(ServiceChestXRay), Amount: 1}
		req.Normalize()
		assert.Error(t, req.Validate())
	})
}
