package model

import (
	"encoding/json"
	"time"
)

// AuditLogEntry records a mutating API request.
type AuditLogEntry struct {
	ID           int64           `json:"id"`
	TokenID      *string         `json:"token_id"`
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	ResourceType *string         `json:"resource_type"`
	ResourceID   *string         `json:"resource_id"`
	StatusCode   int             `json:"status_code"`
	RequestBody  json.RawMessage `json:"request_body"`
	CreatedAt    time.Time       `json:"created_at"`
}
