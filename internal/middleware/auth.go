package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chorecast/chorecast/internal/identity"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// MemberIDKey is the context key for storing the authenticated member ID.
	MemberIDKey contextKey = "member_id"
	// EmailKey is the context key for storing the authenticated member's email.
	EmailKey contextKey = "email"
)

// GetMemberID extracts the member ID from the context.
// Returns empty string if not found.
func GetMemberID(ctx context.Context) string {
	memberID, _ := ctx.Value(MemberIDKey).(string)
	return memberID
}

// GetEmail extracts the member email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// RequireAuth returns middleware that validates bearer tokens and requires
// authentication. It extracts the token from the Authorization header,
// validates it against the shared identity secret, and adds the member ID
// and email to the request context.
func RequireAuth(tokens *identity.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, identity.ErrMissingToken.Error())
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, identity.ErrInvalidToken.Error())
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				unauthorized(w, identity.ErrInvalidToken.Error())
				return
			}

			ctx := context.WithValue(r.Context(), MemberIDKey, claims.MemberID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
