package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type RackService struct {
	db DB
}

func NewRackService(db DB) *RackService {
	return &RackService{db: db}
}

type RackFilter struct {
	Search     string
	SiteID     *int64
	RoleSlug   string
	TenantSlug string
}

const rackColumns = `rk.id,
	s.id, s.name, s.slug,
	rk.name, rk.facility_id,
	t.id, t.name, t.slug,
	rr.id, rr.name, rr.slug,
	rk.width, rk.u_height, rk.comments, rk.custom_fields,
	rk.created_at, rk.updated_at`

const rackFrom = ` FROM racks rk
	JOIN sites s ON rk.site_id = s.id
	LEFT JOIN tenants t ON rk.tenant_id = t.id
	LEFT JOIN rack_roles rr ON rk.role_id = rr.id`

func scanRack(row interface{ Scan(dest ...any) error }) (model.Rack, error) {
	var rk model.Rack
	var siteID int64
	var siteName, siteSlug string
	var tenantID, roleID *int64
	var tenantName, tenantSlug, roleName, roleSlug *string
	err := row.Scan(&rk.ID,
		&siteID, &siteName, &siteSlug,
		&rk.Name, &rk.FacilityID,
		&tenantID, &tenantName, &tenantSlug,
		&roleID, &roleName, &roleSlug,
		&rk.Width, &rk.UHeight, &rk.Comments, &rk.CustomFields,
		&rk.CreatedAt, &rk.UpdatedAt)
	if err != nil {
		return model.Rack{}, err
	}
	rk.SiteID = siteID
	rk.Site = &model.NestedRef{ID: siteID, Name: siteName, Slug: siteSlug}
	if tenantID != nil {
		rk.TenantID = tenantID
		rk.Tenant = &model.NestedRef{ID: *tenantID, Name: *tenantName, Slug: *tenantSlug}
	}
	if roleID != nil {
		rk.RoleID = roleID
		rk.Role = &model.NestedRef{ID: *roleID, Name: *roleName, Slug: *roleSlug}
	}
	return rk, nil
}

func (s *RackService) Create(ctx context.Context, rack *model.Rack) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO racks (site_id, name, facility_id, tenant_id, role_id, width, u_height,
			comments, custom_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now()) RETURNING id`,
		rack.SiteID, rack.Name, rack.FacilityID, rack.TenantID, rack.RoleID,
		rack.Width, rack.UHeight, rack.Comments, rack.CustomFields,
	).Scan(&rack.ID)
	if err != nil {
		return fmt.Errorf("create rack: %w", err)
	}
	return nil
}

func (s *RackService) GetByID(ctx context.Context, id int64) (*model.Rack, error) {
	row := s.db.QueryRow(ctx, `SELECT `+rackColumns+rackFrom+` WHERE rk.id = $1`, id)
	rk, err := scanRack(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("rack %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get rack %d: %w", id, err)
	}
	return &rk, nil
}

func (s *RackService) List(ctx context.Context, filter RackFilter, limit, offset int) ([]model.Rack, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (rk.name ILIKE $%d OR rk.facility_id ILIKE $%d)`, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.SiteID != nil {
		where += fmt.Sprintf(` AND rk.site_id = $%d`, argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}
	if filter.RoleSlug != "" {
		where += fmt.Sprintf(` AND rr.slug = $%d`, argIdx)
		args = append(args, filter.RoleSlug)
		argIdx++
	}
	if filter.TenantSlug != "" {
		where += fmt.Sprintf(` AND t.slug = $%d`, argIdx)
		args = append(args, filter.TenantSlug)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*)`+rackFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count racks: %w", err)
	}

	query := `SELECT ` + rackColumns + rackFrom + where +
		fmt.Sprintf(` ORDER BY s.name, rk.name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list racks: %w", err)
	}
	defer rows.Close()

	racks := []model.Rack{}
	for rows.Next() {
		rk, err := scanRack(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan rack: %w", err)
		}
		racks = append(racks, rk)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate racks: %w", err)
	}

	return racks, total, nil
}

func (s *RackService) Update(ctx context.Context, rack *model.Rack) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE racks SET site_id = $1, name = $2, facility_id = $3, tenant_id = $4,
			role_id = $5, width = $6, u_height = $7, comments = $8, custom_fields = $9,
			updated_at = now()
		 WHERE id = $10`,
		rack.SiteID, rack.Name, rack.FacilityID, rack.TenantID, rack.RoleID,
		rack.Width, rack.UHeight, rack.Comments, rack.CustomFields, rack.ID,
	)
	if err != nil {
		return fmt.Errorf("update rack %d: %w", rack.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rack %d: %w", rack.ID, ErrNotFound)
	}
	return nil
}

func (s *RackService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM racks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete rack %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rack %d: %w", id, ErrNotFound)
	}
	return nil
}
