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

type VLAN struct {
	svc *core.VLANService
}

func NewVLAN(svc *core.VLANService) *VLAN {
	return &VLAN{svc: svc}
}

type vlanRequest struct {
	SiteID       *int64          `json:"site"`
	VID          int             `json:"vid" validate:"required,min=1,max=4094"`
	Name         string          `json:"name" validate:"required"`
	TenantID     *int64          `json:"tenant"`
	Status       string          `json:"status"`
	Description  string          `json:"description"`
	CustomFields json.RawMessage `json:"custom_fields"`
}

func (r vlanRequest) toModel() (*model.VLAN, string) {
	status := r.Status
	if status == "" {
		status = model.VLANStatusActive
	}
	if !model.ValidVLANStatus(status) {
		return nil, "invalid status " + status
	}
	return &model.VLAN{
		SiteID:       r.SiteID,
		VID:          r.VID,
		Name:         r.Name,
		TenantID:     r.TenantID,
		Status:       status,
		Description:  r.Description,
		CustomFields: customFieldsOrEmpty(r.CustomFields),
	}, ""
}

func (h *VLAN) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	siteID, err := request.OptionalIDParam(r, "site_id")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	vid, err := request.OptionalIntParam(r, "vid")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := core.VLANFilter{
		Search: params.Search,
		SiteID: siteID,
		VID:    vid,
		Status: r.URL.Query().Get("status"),
	}

	vlans, total, err := h.svc.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, vlans, total, params.Limit, params.Offset)
}

func (h *VLAN) Create(w http.ResponseWriter, r *http.Request) {
	var req vlanRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	vlan, msg := req.toModel()
	if msg != "" {
		response.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.svc.Create(r.Context(), vlan); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), vlan.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *VLAN) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	vlan, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, vlan)
}

func (h *VLAN) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req vlanRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	vlan, msg := req.toModel()
	if msg != "" {
		response.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	vlan.ID = id

	if err := h.svc.Update(r.Context(), vlan); err != nil {
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

func (h *VLAN) Delete(w http.ResponseWriter, r *http.Request) {
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
