package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

// AuditLogService records and queries mutating API requests.
type AuditLogService struct {
	db DB
}

func NewAuditLogService(db DB) *AuditLogService {
	return &AuditLogService{db: db}
}

type AuditLogFilter struct {
	TokenID      string
	ResourceType string
}

func (s *AuditLogService) Record(ctx context.Context, entry *model.AuditLogEntry) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO audit_logs (token_id, method, path, resource_type, resource_id,
			status_code, request_body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now()) RETURNING id, created_at`,
		entry.TokenID, entry.Method, entry.Path, entry.ResourceType, entry.ResourceID,
		entry.StatusCode, entry.RequestBody,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("record audit log entry: %w", err)
	}
	return nil
}

// List retrieves audit log entries, newest first.
func (s *AuditLogService) List(ctx context.Context, filter AuditLogFilter, limit, offset int) ([]model.AuditLogEntry, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.TokenID != "" {
		where += fmt.Sprintf(` AND token_id = $%d`, argIdx)
		args = append(args, filter.TokenID)
		argIdx++
	}
	if filter.ResourceType != "" {
		where += fmt.Sprintf(` AND resource_type = $%d`, argIdx)
		args = append(args, filter.ResourceType)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM audit_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit log entries: %w", err)
	}

	query := `SELECT id, token_id, method, path, resource_type, resource_id, status_code,
		request_body, created_at FROM audit_logs` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit log entries: %w", err)
	}
	defer rows.Close()

	entries := []model.AuditLogEntry{}
	for rows.Next() {
		var e model.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.TokenID, &e.Method, &e.Path, &e.ResourceType,
			&e.ResourceID, &e.StatusCode, &e.RequestBody, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit log entries: %w", err)
	}

	return entries, total, nil
}
