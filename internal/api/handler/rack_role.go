package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
	"github.com/torvik/inventory/internal/model"
)

type RackRole struct {
	svc *core.RackRoleService
}

func NewRackRole(svc *core.RackRoleService) *RackRole {
	return &RackRole{svc: svc}
}

type rackRoleRequest struct {
	Name  string `json:"name" validate:"required"`
	Slug  string `json:"slug" validate:"required,slug"`
	Color string `json:"color" validate:"omitempty,hexadecimal,len=6"`
}

func (h *RackRole) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	roles, total, err := h.svc.List(r.Context(), core.RackRoleFilter{Search: params.Search}, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, roles, total, params.Limit, params.Offset)
}

func (h *RackRole) Create(w http.ResponseWriter, r *http.Request) {
	var req rackRoleRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	role := &model.RackRole{Name: req.Name, Slug: req.Slug, Color: req.Color}
	if err := h.svc.Create(r.Context(), role); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), role.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *RackRole) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, role)
}

func (h *RackRole) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req rackRoleRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	role := &model.RackRole{ID: id, Name: req.Name, Slug: req.Slug, Color: req.Color}
	if err := h.svc.Update(r.Context(), role); err != nil {
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

func (h *RackRole) Delete(w http.ResponseWriter, r *http.Request) {
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
