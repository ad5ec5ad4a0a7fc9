package handler

import (
	"net/http"
	"strconv"

	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
)

type Search struct {
	svc *core.SearchService
}

func NewSearch(svc *core.SearchService) *Search {
	return &Search{svc: svc}
}

func (h *Search) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.WriteError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}

	results, err := h.svc.Search(r.Context(), query, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"results": results})
}
