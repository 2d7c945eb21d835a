// Package session carries the signed-in actor explicitly into every
// component that talks to the backend.
//
// The console never issues or verifies tokens; the backend does that on every
// call. The token is decoded here only to learn who the actor is and whether
// it has already expired.
package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"claimguard/internal/claims/models"
	dErrors "claimguard/pkg/domain-errors"
)

// Role is the backend role carried in the token.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Session is an immutable signed-in actor.
type Session struct {
	token     string
	userID    models.UserID
	username  string
	role      Role
	expiresAt time.Time
}

// tokenClaims are the claims the backend puts in its login tokens. Older
// tokens carry the user id as "userId", newer ones as "id" or "sub".
type tokenClaims struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// New builds a session from known values. Used when the actor is configured
// explicitly rather than decoded from a token.
func New(token string, userID models.UserID, role Role) *Session {
	return &Session{
		token:  token,
		userID: userID,
		role:   normalizeRole(string(role)),
	}
}

// FromToken decodes the actor from a bearer token issued by the backend.
// The signature is not checked here.
func FromToken(raw string, now time.Time) (*Session, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session token is required")
	}

	claims := new(tokenClaims)
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "session token is malformed")
	}

	s := &Session{
		token:    raw,
		userID:   models.UserID(firstNonEmpty(claims.ID, claims.UserID, claims.Subject)),
		username: claims.Username,
		role:     normalizeRole(claims.Role),
	}
	if claims.ExpiresAt != nil {
		s.expiresAt = claims.ExpiresAt.Time
		if !now.Before(s.expiresAt) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session token has expired")
		}
	}
	if s.userID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session token has no user")
	}
	return s, nil
}

// Token implements upstream.TokenSource.
func (s *Session) Token() string { return s.token }

func (s *Session) UserID() models.UserID { return s.userID }
func (s *Session) Username() string      { return s.username }
func (s *Session) Role() Role            { return s.role }

// ExpiresAt is zero when the token carries no expiry.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Reviewer reports whether the actor reads every claim rather than only
// their own.
func (s *Session) Reviewer() bool {
	return s.role == RoleAdmin || s.role == RoleDoctor
}

// Admin reports whether the actor may toggle account verification.
func (s *Session) Admin() bool {
	return s.role == RoleAdmin
}

func normalizeRole(r string) Role {
	return Role(strings.ToLower(strings.TrimSpace(r)))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
