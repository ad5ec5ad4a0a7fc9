package handler

import (
	"net/http"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
)

type AuditLog struct {
	svc *core.AuditLogService
}

func NewAuditLog(svc *core.AuditLogService) *AuditLog {
	return &AuditLog{svc: svc}
}

func (h *AuditLog) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	filter := core.AuditLogFilter{
		TokenID:      r.URL.Query().Get("token_id"),
		ResourceType: r.URL.Query().Get("resource_type"),
	}

	entries, total, err := h.svc.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, entries, total, params.Limit, params.Offset)
}
