package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
	"github.com/torvik/inventory/internal/model"
)

type Tenant struct {
	svc *core.TenantService
}

func NewTenant(svc *core.TenantService) *Tenant {
	return &Tenant{svc: svc}
}

type tenantRequest struct {
	Name         string          `json:"name" validate:"required"`
	Slug         string          `json:"slug" validate:"required,slug"`
	Description  string          `json:"description"`
	Comments     string          `json:"comments"`
	CustomFields json.RawMessage `json:"custom_fields"`
}

func (h *Tenant) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	tenants, total, err := h.svc.List(r.Context(), core.TenantFilter{Search: params.Search}, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, tenants, total, params.Limit, params.Offset)
}

func (h *Tenant) Create(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant := &model.Tenant{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Comments:     req.Comments,
		CustomFields: customFieldsOrEmpty(req.CustomFields),
	}

	if err := h.svc.Create(r.Context(), tenant); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), tenant.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *Tenant) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, tenant)
}

func (h *Tenant) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req tenantRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant := &model.Tenant{
		ID:           id,
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Comments:     req.Comments,
		CustomFields: customFieldsOrEmpty(req.CustomFields),
	}

	if err := h.svc.Update(r.Context(), tenant); err != nil {
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

func (h *Tenant) Delete(w http.ResponseWriter, r *http.Request) {
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
