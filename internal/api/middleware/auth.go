package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/model"
)

type contextKey string

const TokenIdentityKey contextKey = "token_identity"

// TokenAuthenticator resolves a raw key to an active token. Revoked and
// expired tokens do not resolve.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, rawKey string) (*model.Token, error)
}

// TokenIdentity holds the authenticated token's ID and write permission.
type TokenIdentity struct {
	ID           string
	Name         string
	WriteEnabled bool
}

// GetIdentity returns the authenticated token identity from the context,
// or nil for unauthenticated requests.
func GetIdentity(ctx context.Context) *TokenIdentity {
	identity, _ := ctx.Value(TokenIdentityKey).(*TokenIdentity)
	return identity
}

// Auth returns a middleware that validates the Authorization header against
// the tokens table. The expected form is "Authorization: Token <key>".
// Read-only tokens get a 403 on mutating methods.
func Auth(auth TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			scheme, key, ok := strings.Cut(header, " ")
			if !ok || scheme != "Token" || key == "" {
				response.WriteError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			token, err := auth.Authenticate(r.Context(), key)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			identity := &TokenIdentity{
				ID:           token.ID,
				Name:         token.Name,
				WriteEnabled: token.WriteEnabled,
			}

			if isMutating(r.Method) && !identity.WriteEnabled {
				response.WriteError(w, http.StatusForbidden, "token is read-only")
				return
			}

			ctx := context.WithValue(r.Context(), TokenIdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
