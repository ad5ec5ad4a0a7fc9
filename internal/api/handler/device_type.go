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

type DeviceType struct {
	svc *core.DeviceTypeService
}

func NewDeviceType(svc *core.DeviceTypeService) *DeviceType {
	return &DeviceType{svc: svc}
}

type deviceTypeRequest struct {
	ManufacturerID int64           `json:"manufacturer" validate:"required"`
	Model          string          `json:"model" validate:"required"`
	Slug           string          `json:"slug" validate:"required,slug"`
	PartNumber     string          `json:"part_number"`
	UHeight        int             `json:"u_height" validate:"omitempty,min=0,max=100"`
	IsFullDepth    bool            `json:"is_full_depth"`
	Comments       string          `json:"comments"`
	CustomFields   json.RawMessage `json:"custom_fields"`
}

func (r deviceTypeRequest) toModel() *model.DeviceType {
	uHeight := r.UHeight
	if uHeight == 0 {
		uHeight = 1
	}
	return &model.DeviceType{
		ManufacturerID: r.ManufacturerID,
		Model:          r.Model,
		Slug:           r.Slug,
		PartNumber:     r.PartNumber,
		UHeight:        uHeight,
		IsFullDepth:    r.IsFullDepth,
		Comments:       r.Comments,
		CustomFields:   customFieldsOrEmpty(r.CustomFields),
	}
}

func (h *DeviceType) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	filter := core.DeviceTypeFilter{
		Search:           params.Search,
		ManufacturerSlug: r.URL.Query().Get("manufacturer"),
	}

	types, total, err := h.svc.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, types, total, params.Limit, params.Offset)
}

func (h *DeviceType) Create(w http.ResponseWriter, r *http.Request) {
	var req deviceTypeRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	dt := req.toModel()
	if err := h.svc.Create(r.Context(), dt); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), dt.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *DeviceType) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	dt, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, dt)
}

func (h *DeviceType) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req deviceTypeRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	dt := req.toModel()
	dt.ID = id

	if err := h.svc.Update(r.Context(), dt); err != nil {
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

func (h *DeviceType) Delete(w http.ResponseWriter, r *http.Request) {
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
