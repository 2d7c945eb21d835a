package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "claimguard/pkg/domain-errors"
)

// DecodeJSON reads the body into a T. On failure it has already written the
// response: 413 when the body exceeded the BodyLimit cap, 400 otherwise.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	err := json.NewDecoder(r.Body).Decode(&req)
	if err == nil {
		return &req, true
	}

	logger.WarnContext(ctx, "request body rejected", "error", err, "request_id", requestID)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:            "request_too_large",
			ErrorDescription: "request body is too large",
		})
		return nil, false
	}
	WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
	return nil, false
}

// Normalizable request types clean their own input before validation.
type Normalizable interface {
	Normalize()
}

// Validatable request types check their own fields.
type Validatable interface {
	Validate() error
}

// PrepareRequest runs Normalize, then Validate, for whichever the type implements.
func PrepareRequest(req any) error {
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := req.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

// DecodeAndPrepare decodes and prepares in one step. A plain validation error
// is reported as CodeValidation; a domain error keeps its own code.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger, ctx, requestID)
	if !ok {
		return nil, false
	}
	if err := PrepareRequest(req); err != nil {
		logger.InfoContext(ctx, "request failed validation", "error", err, "request_id", requestID)
		WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, err.Error()))
		return nil, false
	}
	return req, true
}
