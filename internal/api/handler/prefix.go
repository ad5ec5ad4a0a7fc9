package handler

import (
	"encoding/json"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
	"github.com/torvik/inventory/internal/model"
)

type Prefix struct {
	svc *core.PrefixService
}

func NewPrefix(svc *core.PrefixService) *Prefix {
	return &Prefix{svc: svc}
}

type prefixRequest struct {
	Prefix       string          `json:"prefix" validate:"required"`
	SiteID       *int64          `json:"site"`
	VLANID       *int64          `json:"vlan"`
	TenantID     *int64          `json:"tenant"`
	Status       string          `json:"status"`
	IsPool       bool            `json:"is_pool"`
	Description  string          `json:"description"`
	CustomFields json.RawMessage `json:"custom_fields"`
}

func (r prefixRequest) toModel() (*model.Prefix, string) {
	network, err := netip.ParsePrefix(r.Prefix)
	if err != nil {
		return nil, "invalid prefix " + r.Prefix
	}
	status := r.Status
	if status == "" {
		status = model.PrefixStatusActive
	}
	if !model.ValidPrefixStatus(status) {
		return nil, "invalid status " + status
	}
	return &model.Prefix{
		Prefix:       network.Masked().String(),
		SiteID:       r.SiteID,
		VLANID:       r.VLANID,
		TenantID:     r.TenantID,
		Status:       status,
		IsPool:       r.IsPool,
		Description:  r.Description,
		CustomFields: customFieldsOrEmpty(r.CustomFields),
	}, ""
}

func (h *Prefix) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	siteID, err := request.OptionalIDParam(r, "site_id")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	vlanID, err := request.OptionalIDParam(r, "vlan_id")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := core.PrefixFilter{
		Search: params.Search,
		SiteID: siteID,
		VLANID: vlanID,
		Status: r.URL.Query().Get("status"),
	}

	prefixes, total, err := h.svc.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, prefixes, total, params.Limit, params.Offset)
}

func (h *Prefix) Create(w http.ResponseWriter, r *http.Request) {
	var req prefixRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefix, msg := req.toModel()
	if msg != "" {
		response.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.svc.Create(r.Context(), prefix); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), prefix.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *Prefix) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefix, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, prefix)
}

func (h *Prefix) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req prefixRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefix, msg := req.toModel()
	if msg != "" {
		response.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	prefix.ID = id

	if err := h.svc.Update(r.Context(), prefix); err != nil {
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

func (h *Prefix) Delete(w http.ResponseWriter, r *http.Request) {
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
