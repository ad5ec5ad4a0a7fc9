package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
	"github.com/torvik/inventory/internal/model"
)

type CircuitTermination struct {
	svc *core.CircuitTerminationService
}

func NewCircuitTermination(svc *core.CircuitTerminationService) *CircuitTermination {
	return &CircuitTermination{svc: svc}
}

type circuitTerminationRequest struct {
	CircuitID     int64  `json:"circuit" validate:"required"`
	TermSide      string `json:"term_side" validate:"required,oneof=A Z"`
	SiteID        int64  `json:"site" validate:"required"`
	PortSpeed     int    `json:"port_speed" validate:"required,min=1"`
	UpstreamSpeed *int   `json:"upstream_speed" validate:"omitempty,min=1"`
	XConnectID    string `json:"xconnect_id"`
}

func (r circuitTerminationRequest) toModel() *model.CircuitTermination {
	return &model.CircuitTermination{
		CircuitID:     r.CircuitID,
		TermSide:      r.TermSide,
		SiteID:        r.SiteID,
		PortSpeed:     r.PortSpeed,
		UpstreamSpeed: r.UpstreamSpeed,
		XConnectID:    r.XConnectID,
	}
}

func (h *CircuitTermination) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	circuitID, err := request.OptionalIDParam(r, "circuit_id")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	siteID, err := request.OptionalIDParam(r, "site_id")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := core.CircuitTerminationFilter{CircuitID: circuitID, SiteID: siteID}
	terms, total, err := h.svc.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, terms, total, params.Limit, params.Offset)
}

func (h *CircuitTermination) Create(w http.ResponseWriter, r *http.Request) {
	var req circuitTerminationRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	term := req.toModel()
	if err := h.svc.Create(r.Context(), term); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), term.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *CircuitTermination) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	term, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, term)
}

func (h *CircuitTermination) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req circuitTerminationRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	term := req.toModel()
	term.ID = id

	if err := h.svc.Update(r.Context(), term); err != nil {
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

func (h *CircuitTermination) Delete(w http.ResponseWriter, r *http.Request) {
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
