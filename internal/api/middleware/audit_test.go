package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAuditDB counts audit inserts.
type recordingAuditDB struct {
	mu      sync.Mutex
	entries [][]any
}

func (db *recordingAuditDB) Exec(_ context.Context, _ string, arguments ...any) (pgconn.CommandTag, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.entries = append(db.entries, arguments)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestExtractResource_Collection(t *testing.T) {
	resType, resID := extractResource("/api/dcim/sites/")
	assert.NotNil(t, resType)
	assert.Equal(t, "dcim.sites", *resType)
	assert.Nil(t, resID)
}

func TestExtractResource_WithID(t *testing.T) {
	resType, resID := extractResource("/api/dcim/sites/12/")
	assert.NotNil(t, resType)
	assert.Equal(t, "dcim.sites", *resType)
	assert.NotNil(t, resID)
	assert.Equal(t, "12", *resID)
}

func TestExtractResource_Tokens(t *testing.T) {
	resType, resID := extractResource("/api/users/tokens/0f2b3a44-1111/")
	assert.NotNil(t, resType)
	assert.Equal(t, "users.tokens", *resType)
	assert.NotNil(t, resID)
	assert.Equal(t, "0f2b3a44-1111", *resID)
}

func TestExtractResource_TooShort(t *testing.T) {
	resType, resID := extractResource("/api/dcim/")
	assert.Nil(t, resType)
	assert.Nil(t, resID)
}

func TestSanitizeBody(t *testing.T) {
	body := []byte(`{"name":"ci-deploy","key":"0123456789abcdef","write_enabled":true}`)
	sanitized := sanitizeBody(body)

	var result map[string]any
	json.Unmarshal(sanitized, &result)
	assert.Equal(t, "ci-deploy", result["name"])
	assert.Equal(t, "[REDACTED]", result["key"])
	assert.Equal(t, true, result["write_enabled"])
}

func TestSanitizeBody_NonObject(t *testing.T) {
	body := []byte(`[1, 2, 3]`)
	assert.Equal(t, json.RawMessage(body), sanitizeBody(body))
}

func TestAuditLogger_SkipsReads(t *testing.T) {
	db := &recordingAuditDB{}
	al := NewAuditLogger(db, zerolog.Nop())

	handler := al.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/dcim/sites/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	al.Close()
	assert.Empty(t, db.entries)
}

func TestAuditLogger_CloseDrainsBufferedEntries(t *testing.T) {
	db := &recordingAuditDB{}
	al := NewAuditLogger(db, zerolog.Nop())

	handler := al.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/api/dcim/sites/", strings.NewReader(`{"name":"Ashburn DC1","slug":"ashburn-dc1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Close must not return before the drain loop has written the entry.
	al.Close()

	require.Len(t, db.entries, 1)
	args := db.entries[0]
	assert.Equal(t, "POST", args[1])
	assert.Equal(t, "/api/dcim/sites/", args[2])
	assert.Equal(t, http.StatusCreated, args[5])
}
