// Package backend is the client for the authoritative claims backend.
//
// Every call carries the session's bearer token and every failure comes back
// as an *upstream.Error; callers decide which workflow code it becomes.
package backend

import (
	"context"
	"net/http"
	"net/url"

	accountModels "claimguard/internal/accounts/models"
	claimModels "claimguard/internal/claims/models"
	"claimguard/internal/upstream"
)

// ServiceName identifies the backend in upstream errors and logs.
const ServiceName = "backend"

// Client calls the claims backend's REST surface.
type Client struct {
	http *upstream.Client
}

// New creates a backend client rooted at baseURL.
func New(baseURL string, opts ...upstream.Option) *Client {
	return &Client{http: upstream.New(ServiceName, baseURL, opts...)}
}

// statusUpdate is the body of a claim status write.
type statusUpdate struct {
	Status claimModels.Status `json:"status"`
}

// submitRequest is the body of a claim submission.
type submitRequest struct {
	UserID             claimModels.UserID `json:"userId"`
	HospitalName       string             `json:"hospitalName"`
	ServiceDescription string             `json:"serviceDescription"`
	Amount             float64            `json:"amount"`
}

// messageResponse is the acknowledgement body of backend mutations.
type messageResponse struct {
	Message string `json:"message"`
}

// ListClaims reads every claim, in server order. Reviewer scope.
func (c *Client) ListClaims(ctx context.Context) ([]claimModels.Claim, error) {
	var out []claimModels.Claim
	if err := c.http.Do(ctx, http.MethodGet, "/patient/claims", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListClaimsByUser reads the claims filed by one user. Owner scope.
func (c *Client) ListClaimsByUser(ctx context.Context, userID claimModels.UserID) ([]claimModels.Claim, error) {
	var out []claimModels.Claim
	if err := c.http.Do(ctx, http.MethodGet, "/patient/claims/"+url.PathEscape(userID.String()), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitClaim files a new claim on behalf of userID and returns the server's
// confirmation message.
func (c *Client) SubmitClaim(ctx context.Context, userID claimModels.UserID, req claimModels.SubmitRequest) (string, error) {
	body := submitRequest{
		UserID:             userID,
		HospitalName:       req.HospitalName,
		ServiceDescription: req.ServiceDescription,
		Amount:             req.Amount,
	}
	var resp messageResponse
	if err := c.http.Do(ctx, http.MethodPost, "/patient/claims", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// SetClaimStatus persists a verdict label against one claim. A nil error is
// the server's acknowledgement.
func (c *Client) SetClaimStatus(ctx context.Context, id claimModels.ClaimID, status claimModels.Status) error {
	return c.http.Do(ctx, http.MethodPut, "/patient/claims/"+url.PathEscape(id.String()), statusUpdate{Status: status}, nil)
}

// ListAccounts reads the organiser accounts in server order.
func (c *Client) ListAccounts(ctx context.Context) ([]accountModels.Account, error) {
	var out []accountModels.Account
	if err := c.http.Do(ctx, http.MethodGet, "/admin/organisers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleAccount flips one account's verified flag on the server. The server
// decides the new value; a nil error is its acknowledgement.
func (c *Client) ToggleAccount(ctx context.Context, id accountModels.AccountID) error {
	return c.http.Do(ctx, http.MethodPatch, "/admin/organisers/"+url.PathEscape(id.String())+"/verify", nil, nil)
}
