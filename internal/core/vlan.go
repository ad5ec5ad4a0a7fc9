package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type VLANService struct {
	db DB
}

func NewVLANService(db DB) *VLANService {
	return &VLANService{db: db}
}

type VLANFilter struct {
	Search string
	SiteID *int64
	VID    *int
	Status string
}

const vlanColumns = `v.id,
	s.id, s.name, s.slug,
	v.vid, v.name,
	t.id, t.name, t.slug,
	v.status, v.description, v.custom_fields,
	v.created_at, v.updated_at`

const vlanFrom = ` FROM vlans v
	LEFT JOIN sites s ON v.site_id = s.id
	LEFT JOIN tenants t ON v.tenant_id = t.id`

func scanVLAN(row interface{ Scan(dest ...any) error }) (model.VLAN, error) {
	var vl model.VLAN
	var siteID, tenantID *int64
	var siteName, siteSlug, tenantName, tenantSlug *string
	err := row.Scan(&vl.ID,
		&siteID, &siteName, &siteSlug,
		&vl.VID, &vl.Name,
		&tenantID, &tenantName, &tenantSlug,
		&vl.Status, &vl.Description, &vl.CustomFields,
		&vl.CreatedAt, &vl.UpdatedAt)
	if err != nil {
		return model.VLAN{}, err
	}
	if siteID != nil {
		vl.SiteID = siteID
		vl.Site = &model.NestedRef{ID: *siteID, Name: *siteName, Slug: *siteSlug}
	}
	if tenantID != nil {
		vl.TenantID = tenantID
		vl.Tenant = &model.NestedRef{ID: *tenantID, Name: *tenantName, Slug: *tenantSlug}
	}
	return vl, nil
}

func (s *VLANService) Create(ctx context.Context, vlan *model.VLAN) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO vlans (site_id, vid, name, tenant_id, status, description,
			custom_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now()) RETURNING id`,
		vlan.SiteID, vlan.VID, vlan.Name, vlan.TenantID, vlan.Status,
		vlan.Description, vlan.CustomFields,
	).Scan(&vlan.ID)
	if err != nil {
		return fmt.Errorf("create vlan: %w", err)
	}
	return nil
}

func (s *VLANService) GetByID(ctx context.Context, id int64) (*model.VLAN, error) {
	row := s.db.QueryRow(ctx, `SELECT `+vlanColumns+vlanFrom+` WHERE v.id = $1`, id)
	vl, err := scanVLAN(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("vlan %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get vlan %d: %w", id, err)
	}
	return &vl, nil
}

func (s *VLANService) List(ctx context.Context, filter VLANFilter, limit, offset int) ([]model.VLAN, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND v.name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.SiteID != nil {
		where += fmt.Sprintf(` AND v.site_id = $%d`, argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}
	if filter.VID != nil {
		where += fmt.Sprintf(` AND v.vid = $%d`, argIdx)
		args = append(args, *filter.VID)
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND v.status = $%d`, argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*)`+vlanFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vlans: %w", err)
	}

	query := `SELECT ` + vlanColumns + vlanFrom + where +
		fmt.Sprintf(` ORDER BY v.vid LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vlans: %w", err)
	}
	defer rows.Close()

	vlans := []model.VLAN{}
	for rows.Next() {
		vl, err := scanVLAN(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan vlan: %w", err)
		}
		vlans = append(vlans, vl)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate vlans: %w", err)
	}

	return vlans, total, nil
}

func (s *VLANService) Update(ctx context.Context, vlan *model.VLAN) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE vlans SET site_id = $1, vid = $2, name = $3, tenant_id = $4,
			status = $5, description = $6, custom_fields = $7, updated_at = now()
		 WHERE id = $8`,
		vlan.SiteID, vlan.VID, vlan.Name, vlan.TenantID, vlan.Status,
		vlan.Description, vlan.CustomFields, vlan.ID,
	)
	if err != nil {
		return fmt.Errorf("update vlan %d: %w", vlan.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vlan %d: %w", vlan.ID, ErrNotFound)
	}
	return nil
}

func (s *VLANService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM vlans WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete vlan %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vlan %d: %w", id, ErrNotFound)
	}
	return nil
}
