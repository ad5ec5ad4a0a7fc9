package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torvik/inventory/internal/model"
)

// stubAuthenticator returns a fixed token or error for any key.
type stubAuthenticator struct {
	token *model.Token
	err   error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, _ string) (*model.Token, error) {
	return s.token, s.err
}

func TestAuth_MissingHeader(t *testing.T) {
	// Auth checks the header before any DB lookup, so nil pool is safe here.
	handler := Auth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/dcim/sites/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.Equal(t, "missing authorization header", body["error"])
}

func TestAuth_WrongScheme(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"bearer", "Bearer abc123"},
		{"basic", "Basic dXNlcjpwYXNz"},
		{"no scheme", "abc123"},
		{"empty key", "Token "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/api/dcim/sites/", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]string
			json.Unmarshal(rec.Body.Bytes(), &body)
			assert.Equal(t, "invalid authorization header", body["error"])
		})
	}
}

func TestAuth_UnknownToken(t *testing.T) {
	auth := &stubAuthenticator{err: errors.New("token: not found")}
	handler := Auth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/dcim/sites/", nil)
	req.Header.Set("Authorization", "Token deadbeef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, "invalid token", body["error"])
}

func TestAuth_ReadOnlyTokenMutation(t *testing.T) {
	auth := &stubAuthenticator{token: &model.Token{ID: "tok-1", Name: "reader", WriteEnabled: false}}

	mutating := []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	for _, method := range mutating {
		t.Run(method, func(t *testing.T) {
			called := false
			handler := Auth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(method, "/api/dcim/sites/", nil)
			req.Header.Set("Authorization", "Token deadbeef")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.False(t, called)

			var body map[string]string
			json.Unmarshal(rec.Body.Bytes(), &body)
			assert.Equal(t, "token is read-only", body["error"])
		})
	}
}

func TestAuth_ReadOnlyTokenRead(t *testing.T) {
	auth := &stubAuthenticator{token: &model.Token{ID: "tok-1", Name: "reader", WriteEnabled: false}}
	handler := Auth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/dcim/sites/", nil)
	req.Header.Set("Authorization", "Token deadbeef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_IdentityInContext(t *testing.T) {
	auth := &stubAuthenticator{token: &model.Token{ID: "tok-1", Name: "ci-deploy", WriteEnabled: true}}

	var identity *TokenIdentity
	handler := Auth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/dcim/sites/", nil)
	req.Header.Set("Authorization", "Token deadbeef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, identity)
	assert.Equal(t, "tok-1", identity.ID)
	assert.True(t, identity.WriteEnabled)
}

func TestIsMutating(t *testing.T) {
	assert.True(t, isMutating(http.MethodPost))
	assert.True(t, isMutating(http.MethodPut))
	assert.True(t, isMutating(http.MethodPatch))
	assert.True(t, isMutating(http.MethodDelete))
	assert.False(t, isMutating(http.MethodGet))
	assert.False(t, isMutating(http.MethodHead))
	assert.False(t, isMutating(http.MethodOptions))
}

func TestGetIdentity_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, GetIdentity(req.Context()))
}

func TestHashConsistency(t *testing.T) {
	key := "0123456789abcdef0123456789abcdef01234567"
	hash := sha256.Sum256([]byte(key))
	keyHash := hex.EncodeToString(hash[:])
	assert.Len(t, keyHash, 64) // SHA-256 = 64 hex chars
}
