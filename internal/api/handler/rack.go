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

type Rack struct {
	svc *core.RackService
}

func NewRack(svc *core.RackService) *Rack {
	return &Rack{svc: svc}
}

type rackRequest struct {
	SiteID       int64           `json:"site" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	FacilityID   string          `json:"facility_id"`
	TenantID     *int64          `json:"tenant"`
	RoleID       *int64          `json:"role"`
	Width        int             `json:"width" validate:"omitempty,oneof=19 23"`
	UHeight      int             `json:"u_height" validate:"omitempty,min=1,max=100"`
	Comments     string          `json:"comments"`
	CustomFields json.RawMessage `json:"custom_fields"`
}

func (r rackRequest) toModel() *model.Rack {
	width := r.Width
	if width == 0 {
		width = 19
	}
	uHeight := r.UHeight
	if uHeight == 0 {
		uHeight = 42
	}
	return &model.Rack{
		SiteID:       r.SiteID,
		Name:         r.Name,
		FacilityID:   r.FacilityID,
		TenantID:     r.TenantID,
		RoleID:       r.RoleID,
		Width:        width,
		UHeight:      uHeight,
		Comments:     r.Comments,
		CustomFields: customFieldsOrEmpty(r.CustomFields),
	}
}

func (h *Rack) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	siteID, err := request.OptionalIDParam(r, "site_id")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := core.RackFilter{
		Search:     params.Search,
		SiteID:     siteID,
		RoleSlug:   r.URL.Query().Get("role"),
		TenantSlug: r.URL.Query().Get("tenant"),
	}

	racks, total, err := h.svc.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, racks, total, params.Limit, params.Offset)
}

func (h *Rack) Create(w http.ResponseWriter, r *http.Request) {
	var req rackRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rack := req.toModel()
	if err := h.svc.Create(r.Context(), rack); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), rack.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *Rack) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rack, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, rack)
}

func (h *Rack) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req rackRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rack := req.toModel()
	rack.ID = id

	if err := h.svc.Update(r.Context(), rack); err != nil {
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

func (h *Rack) Delete(w http.ResponseWriter, r *http.Request) {
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
