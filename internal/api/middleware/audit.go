package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// auditDB is the write surface the drain loop needs; *pgxpool.Pool
// satisfies it.
type auditDB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// AuditLogger is an async audit log writer.
type AuditLogger struct {
	db     auditDB
	logger zerolog.Logger
	ch     chan auditEntry
	done   chan struct{}
}

type auditEntry struct {
	TokenID      *string
	Method       string
	Path         string
	ResourceType *string
	ResourceID   *string
	StatusCode   int
	RequestBody  json.RawMessage
}

func NewAuditLogger(db auditDB, logger zerolog.Logger) *AuditLogger {
	al := &AuditLogger{
		db:     db,
		logger: logger,
		ch:     make(chan auditEntry, 1024),
		done:   make(chan struct{}),
	}
	go al.drain()
	return al
}

func (al *AuditLogger) drain() {
	defer close(al.done)
	for entry := range al.ch {
		_, err := al.db.Exec(
			// use context.Background since this is async
			context.Background(),
			`INSERT INTO audit_logs (token_id, method, path, resource_type, resource_id, status_code, request_body, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
			entry.TokenID, entry.Method, entry.Path, entry.ResourceType, entry.ResourceID, entry.StatusCode, entry.RequestBody,
		)
		if err != nil {
			al.logger.Error().Err(err).Msg("failed to write audit log")
		}
	}
}

// Close stops accepting entries and blocks until the drain loop has
// written everything still buffered.
func (al *AuditLogger) Close() {
	close(al.ch)
	<-al.done
}

// Middleware returns a chi middleware that logs mutating API requests.
func (al *AuditLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		// Read and re-buffer the request body.
		var bodyBytes []byte
		if r.Body != nil {
			bodyBytes, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		// Wrap response writer to capture status code.
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		resourceType, resourceID := extractResource(r.URL.Path)

		var tokenID *string
		if identity := GetIdentity(r.Context()); identity != nil {
			id := identity.ID
			tokenID = &id
		}

		// Sanitize body - don't log keys or secrets.
		var sanitizedBody json.RawMessage
		if len(bodyBytes) > 0 && json.Valid(bodyBytes) {
			sanitizedBody = sanitizeBody(bodyBytes)
		}

		select {
		case al.ch <- auditEntry{
			TokenID:      tokenID,
			Method:       r.Method,
			Path:         r.URL.Path,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			StatusCode:   sw.status,
			RequestBody:  sanitizedBody,
		}:
		default:
			al.logger.Warn().Msg("audit log buffer full, dropping entry")
		}
	})
}

// extractResource pulls "<app>.<resource>" and the optional object ID from
// an API path like /api/dcim/sites/12/.
func extractResource(path string) (*string, *string) {
	trimmed := strings.Trim(strings.TrimPrefix(path, "/api/"), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, nil
	}

	resourceType := parts[0] + "." + parts[1]
	var resourceID *string
	if len(parts) > 2 && parts[2] != "" {
		id := parts[2]
		resourceID = &id
	}
	return &resourceType, resourceID
}

// sensitiveFields are fields that should be redacted from audit logs.
var sensitiveFields = map[string]bool{
	"key": true, "token": true, "secret": true, "password": true,
}

func sanitizeBody(body []byte) json.RawMessage {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return body
	}
	for k := range data {
		if sensitiveFields[k] {
			data[k] = "[REDACTED]"
		}
	}
	sanitized, _ := json.Marshal(data)
	return sanitized
}
