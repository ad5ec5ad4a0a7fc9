package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type SiteService struct {
	db DB
}

func NewSiteService(db DB) *SiteService {
	return &SiteService{db: db}
}

// SiteFilter narrows site listings. Region and tenant filter by slug, as
// the original URL scheme does.
type SiteFilter struct {
	Search     string
	RegionSlug string
	TenantSlug string
}

const siteColumns = `s.id, s.name, s.slug,
	r.id, r.name, r.slug,
	t.id, t.name, t.slug,
	s.facility, s.asn, s.physical_address, s.shipping_address,
	s.contact_name, s.contact_phone, s.contact_email,
	s.comments, s.custom_fields,
	(SELECT count(*) FROM prefixes px WHERE px.site_id = s.id),
	(SELECT count(*) FROM vlans vl WHERE vl.site_id = s.id),
	(SELECT count(*) FROM racks rk WHERE rk.site_id = s.id),
	(SELECT count(*) FROM devices dv WHERE dv.site_id = s.id),
	(SELECT count(DISTINCT ct.circuit_id) FROM circuit_terminations ct WHERE ct.site_id = s.id),
	s.created_at, s.updated_at`

const siteFrom = ` FROM sites s
	LEFT JOIN regions r ON s.region_id = r.id
	LEFT JOIN tenants t ON s.tenant_id = t.id`

func scanSite(row interface{ Scan(dest ...any) error }) (model.Site, error) {
	var st model.Site
	var regionID, tenantID *int64
	var regionName, regionSlug, tenantName, tenantSlug *string
	err := row.Scan(&st.ID, &st.Name, &st.Slug,
		&regionID, &regionName, &regionSlug,
		&tenantID, &tenantName, &tenantSlug,
		&st.Facility, &st.ASN, &st.PhysicalAddress, &st.ShippingAddress,
		&st.ContactName, &st.ContactPhone, &st.ContactEmail,
		&st.Comments, &st.CustomFields,
		&st.CountPrefixes, &st.CountVLANs, &st.CountRacks, &st.CountDevices, &st.CountCircuits,
		&st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return model.Site{}, err
	}
	if regionID != nil {
		st.RegionID = regionID
		st.Region = &model.NestedRef{ID: *regionID, Name: *regionName, Slug: *regionSlug}
	}
	if tenantID != nil {
		st.TenantID = tenantID
		st.Tenant = &model.NestedRef{ID: *tenantID, Name: *tenantName, Slug: *tenantSlug}
	}
	return st, nil
}

func (s *SiteService) Create(ctx context.Context, site *model.Site) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO sites (name, slug, region_id, tenant_id, facility, asn,
			physical_address, shipping_address, contact_name, contact_phone, contact_email,
			comments, custom_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
		 RETURNING id`,
		site.Name, site.Slug, site.RegionID, site.TenantID, site.Facility, site.ASN,
		site.PhysicalAddress, site.ShippingAddress, site.ContactName, site.ContactPhone,
		site.ContactEmail, site.Comments, site.CustomFields,
	).Scan(&site.ID)
	if err != nil {
		return fmt.Errorf("create site: %w", err)
	}
	return nil
}

func (s *SiteService) GetByID(ctx context.Context, id int64) (*model.Site, error) {
	row := s.db.QueryRow(ctx, `SELECT `+siteColumns+siteFrom+` WHERE s.id = $1`, id)
	st, err := scanSite(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("site %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get site %d: %w", id, err)
	}
	return &st, nil
}

func (s *SiteService) List(ctx context.Context, filter SiteFilter, limit, offset int) ([]model.Site, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (s.name ILIKE $%d OR s.facility ILIKE $%d)`, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.RegionSlug != "" {
		where += fmt.Sprintf(` AND r.slug = $%d`, argIdx)
		args = append(args, filter.RegionSlug)
		argIdx++
	}
	if filter.TenantSlug != "" {
		where += fmt.Sprintf(` AND t.slug = $%d`, argIdx)
		args = append(args, filter.TenantSlug)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*)`+siteFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sites: %w", err)
	}

	query := `SELECT ` + siteColumns + siteFrom + where +
		fmt.Sprintf(` ORDER BY s.name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	sites := []model.Site{}
	for rows.Next() {
		st, err := scanSite(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan site: %w", err)
		}
		sites = append(sites, st)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sites: %w", err)
	}

	return sites, total, nil
}

func (s *SiteService) Update(ctx context.Context, site *model.Site) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE sites SET name = $1, slug = $2, region_id = $3, tenant_id = $4,
			facility = $5, asn = $6, physical_address = $7, shipping_address = $8,
			contact_name = $9, contact_phone = $10, contact_email = $11,
			comments = $12, custom_fields = $13, updated_at = now()
		 WHERE id = $14`,
		site.Name, site.Slug, site.RegionID, site.TenantID, site.Facility, site.ASN,
		site.PhysicalAddress, site.ShippingAddress, site.ContactName, site.ContactPhone,
		site.ContactEmail, site.Comments, site.CustomFields, site.ID,
	)
	if err != nil {
		return fmt.Errorf("update site %d: %w", site.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("site %d: %w", site.ID, ErrNotFound)
	}
	return nil
}

func (s *SiteService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM sites WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete site %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("site %d: %w", id, ErrNotFound)
	}
	return nil
}

// ExportRow is one line of the site CSV export.
type ExportRow struct {
	Name         string
	Slug         string
	Region       string
	Tenant       string
	Facility     string
	ASN          *int64
	ContactName  string
	ContactPhone string
	ContactEmail string
}

// Export returns all sites in name order for CSV export.
func (s *SiteService) Export(ctx context.Context) ([]ExportRow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT s.name, s.slug, COALESCE(r.name, ''), COALESCE(t.name, ''), s.facility, s.asn,
			s.contact_name, s.contact_phone, s.contact_email`+siteFrom+` ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("export sites: %w", err)
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(&row.Name, &row.Slug, &row.Region, &row.Tenant, &row.Facility,
			&row.ASN, &row.ContactName, &row.ContactPhone, &row.ContactEmail); err != nil {
			return nil, fmt.Errorf("scan site export row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate site export: %w", err)
	}
	return out, nil
}
