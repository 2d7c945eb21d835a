// Package console exposes the operator console over JSON HTTP.
package console

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	accountModels "claimguard/internal/accounts/models"
	accountService "claimguard/internal/accounts/service"
	claimModels "claimguard/internal/claims/models"
	claimService "claimguard/internal/claims/service"
	"claimguard/internal/verification"
	dErrors "claimguard/pkg/domain-errors"
	"claimguard/pkg/platform/httputil"
	"claimguard/pkg/requestcontext"
)

// ClaimsService reads the claim cache and files new claims.
type ClaimsService interface {
	List() []claimModels.Claim
	Refresh(ctx context.Context) error
	Submit(ctx context.Context, req claimModels.SubmitRequest) (*claimService.SubmitResult, error)
}

// Verifier runs verification cycles.
type Verifier interface {
	Verify(ctx context.Context, id claimModels.ClaimID) (*verification.Cycle, error)
	Active(id claimModels.ClaimID) bool
}

// AccountsService reads the account cache and toggles verification.
type AccountsService interface {
	List() []accountModels.Account
	Refresh(ctx context.Context) error
	Toggle(ctx context.Context, id accountModels.AccountID, currentFlag bool) (*accountService.ToggleResult, error)
	Active(id accountModels.AccountID) bool
}

type Handler struct {
	claims   ClaimsService
	verifier Verifier
	accounts AccountsService
	logger   *slog.Logger
}

// New builds the console handler. accounts may be nil for sessions that do
// not manage accounts; those routes then answer 403.
func New(claims ClaimsService, verifier Verifier, accounts AccountsService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{claims: claims, verifier: verifier, accounts: accounts, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/claims", h.HandleListClaims)
	r.Post("/claims", h.HandleSubmitClaim)
	r.Post("/claims/reload", h.HandleReloadClaims)
	r.Post("/claims/{claimID}/verify", h.HandleVerifyClaim)

	r.Route("/accounts", func(r chi.Router) {
		r.Use(h.requireAccounts)
		r.Get("/", h.HandleListAccounts)
		r.Post("/reload", h.HandleReloadAccounts)
		r.Patch("/{accountID}/verify", h.HandleToggleAccount)
	})
}

func (h *Handler) requireAccounts(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.accounts == nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "account management requires an admin session"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) HandleListClaims(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.claimList())
}

// HandleReloadClaims re-reads the claim list. The previous snapshot stays in
// place when the read fails.
func (h *Handler) HandleReloadClaims(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.claims.Refresh(ctx); err != nil {
		h.logger.WarnContext(ctx, "claim reload failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.claimList())
}

func (h *Handler) HandleSubmitClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[claimModels.SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.claims.Submit(ctx, *req)
	if err != nil {
		h.logger.ErrorContext(ctx, "submit claim failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, SubmitResponse{Message: res.Message, Notice: res.Notice})
}

// HandleVerifyClaim runs one verification cycle and reports where it ended.
// A failed cycle is still described in the body, under the failure's status.
func (h *Handler) HandleVerifyClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := claimModels.ParseClaimID(chi.URLParam(r, "claimID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cycle, err := h.verifier.Verify(ctx, id)
	if cycle == nil {
		h.logger.InfoContext(ctx, "verify not started", "claim_id", id, "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	resp := toCycleResponse(cycle)
	status := http.StatusOK
	if err != nil {
		code := dErrors.CodeOf(err)
		status = httputil.DomainCodeToHTTPStatus(code)
		resp.Error = httputil.DomainCodeToHTTPCode(code)
		resp.ErrorDescription = err.Error()
	}
	httputil.WriteJSON(w, status, resp)
}

func (h *Handler) HandleListAccounts(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.accountList())
}

func (h *Handler) HandleReloadAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.accounts.Refresh(ctx); err != nil {
		h.logger.WarnContext(ctx, "account reload failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.accountList())
}

func (h *Handler) HandleToggleAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := accountModels.ParseAccountID(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ToggleRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.accounts.Toggle(ctx, id, *req.CurrentFlag)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle account failed", "account_id", id, "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ToggleResponse{
		AccountID:  res.AccountID.String(),
		IsVerified: res.Verified,
		Message:    res.Message,
	})
}

func (h *Handler) claimList() ClaimListResponse {
	claims := h.claims.List()
	out := ClaimListResponse{Claims: make([]ClaimResponse, 0, len(claims))}
	for _, c := range claims {
		out.Claims = append(out.Claims, toClaimResponse(c, h.verifier.Active(c.ID)))
	}
	return out
}

func (h *Handler) accountList() AccountListResponse {
	accounts := h.accounts.List()
	out := AccountListResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, AccountResponse{
			ID:         a.ID.String(),
			Username:   a.Username,
			Email:      a.Email,
			IsVerified: a.IsVerified,
			Action:     accountModels.Verb(a.IsVerified),
			Pending:    h.accounts.Active(a.ID),
		})
	}
	return out
}
