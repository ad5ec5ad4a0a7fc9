package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
	"github.com/torvik/inventory/internal/model"
)

type CircuitType struct {
	svc *core.CircuitTypeService
}

func NewCircuitType(svc *core.CircuitTypeService) *CircuitType {
	return &CircuitType{svc: svc}
}

type circuitTypeRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required,slug"`
}

func (h *CircuitType) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	types, total, err := h.svc.List(r.Context(), core.CircuitTypeFilter{Search: params.Search}, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, types, total, params.Limit, params.Offset)
}

func (h *CircuitType) Create(w http.ResponseWriter, r *http.Request) {
	var req circuitTypeRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ct := &model.CircuitType{Name: req.Name, Slug: req.Slug}
	if err := h.svc.Create(r.Context(), ct); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), ct.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *CircuitType) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ct, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, ct)
}

func (h *CircuitType) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req circuitTypeRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ct := &model.CircuitType{ID: id, Name: req.Name, Slug: req.Slug}
	if err := h.svc.Update(r.Context(), ct); err != nil {
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

func (h *CircuitType) Delete(w http.ResponseWriter, r *http.Request) {
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
