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

type Provider struct {
	svc *core.ProviderService
}

func NewProvider(svc *core.ProviderService) *Provider {
	return &Provider{svc: svc}
}

type providerRequest struct {
	Name         string          `json:"name" validate:"required"`
	Slug         string          `json:"slug" validate:"required,slug"`
	ASN          *int64          `json:"asn" validate:"omitempty,min=1"`
	Account      string          `json:"account"`
	PortalURL    string          `json:"portal_url" validate:"omitempty,url"`
	NOCContact   string          `json:"noc_contact"`
	AdminContact string          `json:"admin_contact"`
	Comments     string          `json:"comments"`
	CustomFields json.RawMessage `json:"custom_fields"`
}

func (r providerRequest) toModel() *model.Provider {
	return &model.Provider{
		Name:         r.Name,
		Slug:         r.Slug,
		ASN:          r.ASN,
		Account:      r.Account,
		PortalURL:    r.PortalURL,
		NOCContact:   r.NOCContact,
		AdminContact: r.AdminContact,
		Comments:     r.Comments,
		CustomFields: customFieldsOrEmpty(r.CustomFields),
	}
}

func (h *Provider) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	providers, total, err := h.svc.List(r.Context(), core.ProviderFilter{Search: params.Search}, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, providers, total, params.Limit, params.Offset)
}

func (h *Provider) Create(w http.ResponseWriter, r *http.Request) {
	var req providerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider := req.toModel()
	if err := h.svc.Create(r.Context(), provider); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), provider.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *Provider) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, provider)
}

func (h *Provider) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req providerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider := req.toModel()
	provider.ID = id

	if err := h.svc.Update(r.Context(), provider); err != nil {
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

func (h *Provider) Delete(w http.ResponseWriter, r *http.Request) {
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
