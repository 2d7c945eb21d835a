package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"claimguard/internal/session"
)

// devSigningKey only matters to a local backend started with the same key.
// The console itself never checks signatures.
const (
	devSigningKey   = "dev-secret-key-change-in-production"
	defaultTokenTTL = time.Hour
)

type tokenOutput struct {
	Token     string         `json:"token"`
	ExpiresIn string         `json:"expires_in"`
	Claims    map[string]any `json:"claims"`
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a dev session token for local runs (never valid against a real backend)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, _ := cmd.Flags().GetString("user-id")
			username, _ := cmd.Flags().GetString("username")
			role, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			key, _ := cmd.Flags().GetString("signing-key")
			asJSON, _ := cmd.Flags().GetBool("json")

			if userID == "" {
				userID = uuid.NewString()
			}
			claims, token, err := mintToken(userID, username, session.Role(role), ttl, key, time.Now())
			if err != nil {
				return err
			}
			return printToken(cmd.OutOrStdout(), claims, token, ttl, asJSON)
		},
	}
	cmd.Flags().String("user-id", "", "user ID; generated if empty")
	cmd.Flags().String("username", "operator", "display name")
	cmd.Flags().String("role", string(session.RoleAdmin), "admin, doctor or patient")
	cmd.Flags().Duration("ttl", defaultTokenTTL, "token lifetime")
	cmd.Flags().String("signing-key", devSigningKey, "HMAC key shared with the local backend")
	cmd.Flags().Bool("json", false, "print as JSON")
	return cmd
}

func mintToken(userID, username string, role session.Role, ttl time.Duration, key string, now time.Time) (jwt.MapClaims, string, error) {
	if ttl <= 0 {
		return nil, "", fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	claims := jwt.MapClaims{
		"id":       userID,
		"username": username,
		"role":     string(role),
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return claims, token, nil
}

func printToken(w io.Writer, claims jwt.MapClaims, token string, ttl time.Duration, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tokenOutput{Token: token, ExpiresIn: ttl.String(), Claims: claims})
	}
	fmt.Fprintf(w, "User ID:    %v\n", claims["id"])
	fmt.Fprintf(w, "Role:       %v\n", claims["role"])
	fmt.Fprintf(w, "Expires In: %s\n\n", ttl)
	fmt.Fprintln(w, token)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  export CLAIMGUARD_TOKEN=<token>")
	return nil
}
