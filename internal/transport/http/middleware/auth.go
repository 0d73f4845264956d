package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vedran77/taskdeck/internal/repository"
	"github.com/vedran77/taskdeck/internal/token"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// SessionCookie is the name of the HTTP-only cookie carrying the identity
// token. A bearer Authorization header works as a fallback for API clients.
const SessionCookie = "token"

// Auth resolves the caller's identity on every protected request: pull a
// token from the cookie or bearer header, verify it, then re-fetch the user
// to confirm the account still exists. No token means no store lookup.
func Auth(tokens *token.Service, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r)
			if raw == "" {
				unauthorized(w)
				return
			}

			userID, _, err := tokens.Verify(raw)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				http.Error(w, `{"error":{"code":"INTERNAL","message":"Something went wrong"}}`, http.StatusInternalServerError)
				return
			}
			if user == nil {
				unauthorized(w)
				return
			}

			identity := Identity{UserID: user.ID, Email: user.Email}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Missing or invalid token"}}`))
}

// GetIdentity extracts the resolved identity from request context.
func GetIdentity(ctx context.Context) Identity {
	return ctx.Value(identityKey).(Identity)
}
