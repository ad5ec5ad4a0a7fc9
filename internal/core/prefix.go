package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type PrefixService struct {
	db DB
}

func NewPrefixService(db DB) *PrefixService {
	return &PrefixService{db: db}
}

type PrefixFilter struct {
	Search string
	SiteID *int64
	VLANID *int64
	Status string
}

const prefixColumns = `p.id, p.prefix::text,
	s.id, s.name, s.slug,
	v.id, v.name,
	t.id, t.name, t.slug,
	p.status, p.is_pool, p.description, p.custom_fields,
	p.created_at, p.updated_at`

const prefixFrom = ` FROM prefixes p
	LEFT JOIN sites s ON p.site_id = s.id
	LEFT JOIN vlans v ON p.vlan_id = v.id
	LEFT JOIN tenants t ON p.tenant_id = t.id`

func scanPrefix(row interface{ Scan(dest ...any) error }) (model.Prefix, error) {
	var px model.Prefix
	var siteID, vlanID, tenantID *int64
	var siteName, siteSlug, vlanName, tenantName, tenantSlug *string
	err := row.Scan(&px.ID, &px.Prefix,
		&siteID, &siteName, &siteSlug,
		&vlanID, &vlanName,
		&tenantID, &tenantName, &tenantSlug,
		&px.Status, &px.IsPool, &px.Description, &px.CustomFields,
		&px.CreatedAt, &px.UpdatedAt)
	if err != nil {
		return model.Prefix{}, err
	}
	if siteID != nil {
		px.SiteID = siteID
		px.Site = &model.NestedRef{ID: *siteID, Name: *siteName, Slug: *siteSlug}
	}
	if vlanID != nil {
		px.VLANID = vlanID
		px.VLAN = &model.NestedRef{ID: *vlanID, Name: *vlanName}
	}
	if tenantID != nil {
		px.TenantID = tenantID
		px.Tenant = &model.NestedRef{ID: *tenantID, Name: *tenantName, Slug: *tenantSlug}
	}
	return px, nil
}

func (s *PrefixService) Create(ctx context.Context, prefix *model.Prefix) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO prefixes (prefix, site_id, vlan_id, tenant_id, status, is_pool,
			description, custom_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now()) RETURNING id`,
		prefix.Prefix, prefix.SiteID, prefix.VLANID, prefix.TenantID,
		prefix.Status, prefix.IsPool, prefix.Description, prefix.CustomFields,
	).Scan(&prefix.ID)
	if err != nil {
		return fmt.Errorf("create prefix: %w", err)
	}
	return nil
}

func (s *PrefixService) GetByID(ctx context.Context, id int64) (*model.Prefix, error) {
	row := s.db.QueryRow(ctx, `SELECT `+prefixColumns+prefixFrom+` WHERE p.id = $1`, id)
	px, err := scanPrefix(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("prefix %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get prefix %d: %w", id, err)
	}
	return &px, nil
}

func (s *PrefixService) List(ctx context.Context, filter PrefixFilter, limit, offset int) ([]model.Prefix, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (p.prefix::text ILIKE $%d OR p.description ILIKE $%d)`, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.SiteID != nil {
		where += fmt.Sprintf(` AND p.site_id = $%d`, argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}
	if filter.VLANID != nil {
		where += fmt.Sprintf(` AND p.vlan_id = $%d`, argIdx)
		args = append(args, *filter.VLANID)
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND p.status = $%d`, argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*)`+prefixFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count prefixes: %w", err)
	}

	query := `SELECT ` + prefixColumns + prefixFrom + where +
		fmt.Sprintf(` ORDER BY p.prefix LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list prefixes: %w", err)
	}
	defer rows.Close()

	prefixes := []model.Prefix{}
	for rows.Next() {
		px, err := scanPrefix(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan prefix: %w", err)
		}
		prefixes = append(prefixes, px)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate prefixes: %w", err)
	}

	return prefixes, total, nil
}

func (s *PrefixService) Update(ctx context.Context, prefix *model.Prefix) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE prefixes SET prefix = $1, site_id = $2, vlan_id = $3, tenant_id = $4,
			status = $5, is_pool = $6, description = $7, custom_fields = $8, updated_at = now()
		 WHERE id = $9`,
		prefix.Prefix, prefix.SiteID, prefix.VLANID, prefix.TenantID,
		prefix.Status, prefix.IsPool, prefix.Description, prefix.CustomFields, prefix.ID,
	)
	if err != nil {
		return fmt.Errorf("update prefix %d: %w", prefix.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prefix %d: %w", prefix.ID, ErrNotFound)
	}
	return nil
}

func (s *PrefixService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM prefixes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete prefix %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prefix %d: %w", id, ErrNotFound)
	}
	return nil
}
