package handler

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/inventory/internal/api/request"
	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
	"github.com/torvik/inventory/internal/model"
)

type Site struct {
	svc *core.SiteService
}

func NewSite(svc *core.SiteService) *Site {
	return &Site{svc: svc}
}

type siteRequest struct {
	Name            string          `json:"name" validate:"required"`
	Slug            string          `json:"slug" validate:"required,slug"`
	RegionID        *int64          `json:"region"`
	TenantID        *int64          `json:"tenant"`
	Facility        string          `json:"facility"`
	ASN             *int64          `json:"asn"`
	PhysicalAddress string          `json:"physical_address"`
	ShippingAddress string          `json:"shipping_address"`
	ContactName     string          `json:"contact_name"`
	ContactPhone    string          `json:"contact_phone"`
	ContactEmail    string          `json:"contact_email" validate:"omitempty,email"`
	Comments        string          `json:"comments"`
	CustomFields    json.RawMessage `json:"custom_fields"`
}

func (r siteRequest) toModel() *model.Site {
	return &model.Site{
		Name:            r.Name,
		Slug:            r.Slug,
		RegionID:        r.RegionID,
		TenantID:        r.TenantID,
		Facility:        r.Facility,
		ASN:             r.ASN,
		PhysicalAddress: r.PhysicalAddress,
		ShippingAddress: r.ShippingAddress,
		ContactName:     r.ContactName,
		ContactPhone:    r.ContactPhone,
		ContactEmail:    r.ContactEmail,
		Comments:        r.Comments,
		CustomFields:    customFieldsOrEmpty(r.CustomFields),
	}
}

func (h *Site) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r)

	filter := core.SiteFilter{
		Search:     params.Search,
		RegionSlug: r.URL.Query().Get("region"),
		TenantSlug: r.URL.Query().Get("tenant"),
	}

	sites, total, err := h.svc.List(r.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteList(w, r, sites, total, params.Limit, params.Offset)
}

func (h *Site) Create(w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	site := req.toModel()
	if err := h.svc.Create(r.Context(), site); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.svc.GetByID(r.Context(), site.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *Site) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	site, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, site)
}

func (h *Site) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req siteRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	site := req.toModel()
	site.ID = id

	if err := h.svc.Update(r.Context(), site); err != nil {
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

func (h *Site) Delete(w http.ResponseWriter, r *http.Request) {
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

// Export streams all sites as CSV.
func (h *Site) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Export(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sites.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"name", "slug", "region", "tenant", "facility", "asn",
		"contact_name", "contact_phone", "contact_email"})
	for _, row := range rows {
		asn := ""
		if row.ASN != nil {
			asn = strconv.FormatInt(*row.ASN, 10)
		}
		cw.Write([]string{row.Name, row.Slug, row.Region, row.Tenant, row.Facility, asn,
			row.ContactName, row.ContactPhone, row.ContactEmail})
	}
	cw.Flush()
}
