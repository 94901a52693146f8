package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/766ms/Glam-rent-v1/pkg/auth"
	"github.com/766ms/Glam-rent-v1/pkg/response"
)

// Identity is the authenticated caller, resolved from the bearer token and
// the user store, and passed to handlers through the request context.
type Identity struct {
	ID      uint
	Name    string
	Email   string
	IsAdmin bool
}

// IdentityResolver loads the identity behind a verified token.
// Returning an error means the token's user no longer exists.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID uint) (Identity, error)
}

type identityKey struct{}

// CurrentUser returns the authenticated identity stored by Authenticate.
func CurrentUser(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey{}).(Identity)
	return id, ok
}

// Authenticate verifies the Authorization bearer token and resolves it to a
// live user. Missing, malformed, expired and unknown-user tokens are all
// reported as a plain 401; the caller is not told which case applied.
func Authenticate(users IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.Unauthorized(w)
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			identity, err := users.Resolve(r.Context(), claims.UserID)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin allows only identities carrying the admin flag.
// Must be mounted after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := CurrentUser(r)
		if !ok {
			response.Unauthorized(w)
			return
		}
		if !identity.IsAdmin {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(header)
}
