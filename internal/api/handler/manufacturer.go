package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
	"github.com/torvik/inventory/internal/model"
)

type Manufacturer struct {
	svc *core.ManufacturerService
}

func NewManufacturer(svc *core.ManufacturerService) *Manufacturer {
	return &Manufacturer{svc: svc}
}

type manufacturerRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required,slug"`
}

func (h *Manufacturer) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	makers, total, err := h.svc.List(r.Context(), core.ManufacturerFilter{Search: params.Search}, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, makers, total, params.Limit, params.Offset)
}

func (h *Manufacturer) Create(w http.ResponseWriter, r *http.Request) {
	var req manufacturerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	maker := &model.Manufacturer{Name: req.Name, Slug: req.Slug}
	if err := h.svc.Create(r.Context(), maker); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), maker.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *Manufacturer) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	maker, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, maker)
}

func (h *Manufacturer) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req manufacturerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	maker := &model.Manufacturer{ID: id, Name: req.Name, Slug: req.Slug}
	if err := h.svc.Update(r.Context(), maker); err != nil {
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

func (h *Manufacturer) Delete(w http.ResponseWriter, r *http.Request) {
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
