package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
	"github.com/torvik/inventory/internal/model"
)

type Token struct {
	svc *core.TokenService
}

func NewToken(svc *core.TokenService) *Token {
	return &Token{svc: svc}
}

// tokenCreated is the one response that carries the raw key.
type tokenCreated struct {
	*model.Token
	Key string `json:"key"`
}

func (h *Token) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	tokens, total, err := h.svc.List(r.Context(), params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, tokens, total, params.Limit, params.Offset)
}

func (h *Token) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name" validate:"required"`
		WriteEnabled bool   `json:"write_enabled"`
	}
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, rawKey, err := h.svc.Create(r.Context(), req.Name, req.WriteEnabled)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, tokenCreated{Token: token, Key: rawKey})
}

func (h *Token) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, token)
}

func (h *Token) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Revoke(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
