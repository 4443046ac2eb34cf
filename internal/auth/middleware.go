package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/habitap/habitap/internal/model"
	"github.com/habitap/habitap/internal/repository"
)

// contextKey is an unexported type for context keys in this package.
// A package-private key type means no other package can read or shadow the
// authenticated user stored in the request context.
type contextKey string

const userKey contextKey = "user"

// RequireUser enforces authentication on protected routes.
//
// It reads the bearer token from the Authorization header, validates the
// JWT, resolves the subject claim (an email) to a registered user, and
// stores the full user record in the request context. The chain stops with
// 401 for anything wrong with the token or the lookup, and 400 for a valid
// token belonging to a deactivated account.
//
// Every 401 carries the same generic message. Whether the token was
// missing, expired, tampered with, or referenced a deleted user is not the
// client's business.
func RequireUser(tokens *TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			email, err := tokens.Validate(token)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetUserByEmail(r.Context(), email)
			if err != nil {
				unauthorized(w)
				return
			}

			if !user.IsActive {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"validation_error","message":"Inactive user"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user stored by RequireUser.
// Returns (nil, false) on routes the middleware didn't run on.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"Could not validate credentials"}`))
}
