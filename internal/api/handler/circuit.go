package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
	"github.com/torvik/inventory/internal/model"
)

type Circuit struct {
	svc *core.CircuitService
}

func NewCircuit(svc *core.CircuitService) *Circuit {
	return &Circuit{svc: svc}
}

type circuitRequest struct {
	CID          string          `json:"cid" validate:"required"`
	ProviderID   int64           `json:"provider" validate:"required"`
	TypeID       int64           `json:"type" validate:"required"`
	TenantID     *int64          `json:"tenant"`
	InstallDate  *string         `json:"install_date"`
	CommitRate   *int            `json:"commit_rate" validate:"omitempty,min=0"`
	Description  string          `json:"description"`
	Comments     string          `json:"comments"`
	CustomFields json.RawMessage `json:"custom_fields"`
}

func (r circuitRequest) toModel() (*model.Circuit, string) {
	var installDate *time.Time
	if r.InstallDate != nil {
		d, err := time.Parse("2006-01-02", *r.InstallDate)
		if err != nil {
			return nil, "invalid install_date " + *r.InstallDate
		}
		installDate = &d
	}
	return &model.Circuit{
		CID:          r.CID,
		ProviderID:   r.ProviderID,
		TypeID:       r.TypeID,
		TenantID:     r.TenantID,
		InstallDate:  installDate,
		CommitRate:   r.CommitRate,
		Description:  r.Description,
		Comments:     r.Comments,
		CustomFields: customFieldsOrEmpty(r.CustomFields),
	}, ""
}

func (h *Circuit) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	filter := core.CircuitFilter{
		Search:       params.Search,
		ProviderSlug: r.URL.Query().Get("provider"),
		TypeSlug:     r.URL.Query().Get("type"),
	}

	circuits, total, err := h.svc.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, circuits, total, params.Limit, params.Offset)
}

func (h *Circuit) Create(w http.ResponseWriter, r *http.Request) {
	var req circuitRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	circuit, msg := req.toModel()
	if msg != "" {
		response.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.svc.Create(r.Context(), circuit); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), circuit.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *Circuit) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	circuit, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, circuit)
}

func (h *Circuit) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req circuitRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	circuit, msg := req.toModel()
	if msg != "" {
		response.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	circuit.ID = id

	if err := h.svc.Update(r.Context(), circuit); err != nil {
		writeServiceError(w, err)
		return
	}

	updated, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, updated)
}

func (h *Circuit) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
