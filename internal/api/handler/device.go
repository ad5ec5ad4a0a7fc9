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

type Device struct {
	svc *core.DeviceService
}

func NewDevice(svc *core.DeviceService) *Device {
	return &Device{svc: svc}
}

type deviceRequest struct {
	Name         *string         `json:"name"`
	DeviceTypeID int64           `json:"device_type" validate:"required"`
	DeviceRoleID int64           `json:"device_role" validate:"required"`
	TenantID     *int64          `json:"tenant"`
	Serial       string          `json:"serial"`
	AssetTag     *string         `json:"asset_tag"`
	SiteID       int64           `json:"site" validate:"required"`
	RackID       *int64          `json:"rack"`
	Position     *int            `json:"position" validate:"omitempty,min=1,max=100"`
	Face         *string         `json:"face"`
	Status       string          `json:"status"`
	Comments     string          `json:"comments"`
	CustomFields json.RawMessage `json:"custom_fields"`
}

func (r deviceRequest) toModel() (*model.Device, string) {
	status := r.Status
	if status == "" {
		status = model.DeviceStatusActive
	}
	if !model.ValidDeviceStatus(status) {
		return nil, "invalid status " + status
	}
	if r.Face != nil && *r.Face != model.DeviceFaceFront && *r.Face != model.DeviceFaceRear {
		return nil, "invalid face " + *r.Face
	}
	if (r.Position != nil || r.Face != nil) && r.RackID == nil {
		return nil, "position and face require a rack"
	}
	return &model.Device{
		Name:         r.Name,
		DeviceTypeID: r.DeviceTypeID,
		DeviceRoleID: r.DeviceRoleID,
		TenantID:     r.TenantID,
		Serial:       r.Serial,
		AssetTag:     r.AssetTag,
		SiteID:       r.SiteID,
		RackID:       r.RackID,
		Position:     r.Position,
		Face:         r.Face,
		Status:       status,
		Comments:     r.Comments,
		CustomFields: customFieldsOrEmpty(r.CustomFields),
	}, ""
}

func (h *Device) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	siteID, err := request.OptionalIDParam(r, "site_id")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rackID, err := request.OptionalIDParam(r, "rack_id")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := core.DeviceFilter{
		Search:     params.Search,
		SiteID:     siteID,
		RackID:     rackID,
		RoleSlug:   r.URL.Query().Get("role"),
		TenantSlug: r.URL.Query().Get("tenant"),
		Status:     r.URL.Query().Get("status"),
	}

	devices, total, err := h.svc.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, devices, total, params.Limit, params.Offset)
}

func (h *Device) Create(w http.ResponseWriter, r *http.Request) {
	var req deviceRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	device, msg := req.toModel()
	if msg != "" {
		response.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.svc.Create(r.Context(), device); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), device.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *Device) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	device, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, device)
}

func (h *Device) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req deviceRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	device, msg := req.toModel()
	if msg != "" {
		response.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	device.ID = id

	if err := h.svc.Update(r.Context(), device); err != nil {
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

func (h *Device) Delete(w http.ResponseWriter, r *http.Request) {
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
