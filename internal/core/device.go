package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type DeviceService struct {
	db DB
}

func NewDeviceService(db DB) *DeviceService {
	return &DeviceService{db: db}
}

type DeviceFilter struct {
	Search     string
	SiteID     *int64
	RackID     *int64
	RoleSlug   string
	TenantSlug string
	Status     string
}

const deviceColumns = `d.id, d.name,
	dt.id, dt.model, dt.slug,
	dr.id, dr.name, dr.slug,
	t.id, t.name, t.slug,
	d.serial, d.asset_tag,
	s.id, s.name, s.slug,
	rk.id, rk.name,
	d.position, d.face, d.status, d.comments, d.custom_fields,
	d.created_at, d.updated_at`

const deviceFrom = ` FROM devices d
	JOIN device_types dt ON d.device_type_id = dt.id
	JOIN device_roles dr ON d.device_role_id = dr.id
	JOIN sites s ON d.site_id = s.id
	LEFT JOIN tenants t ON d.tenant_id = t.id
	LEFT JOIN racks rk ON d.rack_id = rk.id`

func scanDevice(row interface{ Scan(dest ...any) error }) (model.Device, error) {
	var d model.Device
	var typeID, roleID, siteID int64
	var typeModel, typeSlug, roleName, roleSlug, siteName, siteSlug string
	var tenantID, rackID *int64
	var tenantName, tenantSlug, rackName *string
	err := row.Scan(&d.ID, &d.Name,
		&typeID, &typeModel, &typeSlug,
		&roleID, &roleName, &roleSlug,
		&tenantID, &tenantName, &tenantSlug,
		&d.Serial, &d.AssetTag,
		&siteID, &siteName, &siteSlug,
		&rackID, &rackName,
		&d.Position, &d.Face, &d.Status, &d.Comments, &d.CustomFields,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return model.Device{}, err
	}
	d.DeviceTypeID = typeID
	d.DeviceType = &model.NestedRef{ID: typeID, Name: typeModel, Slug: typeSlug}
	d.DeviceRoleID = roleID
	d.DeviceRole = &model.NestedRef{ID: roleID, Name: roleName, Slug: roleSlug}
	d.SiteID = siteID
	d.Site = &model.NestedRef{ID: siteID, Name: siteName, Slug: siteSlug}
	if tenantID != nil {
		d.TenantID = tenantID
		d.Tenant = &model.NestedRef{ID: *tenantID, Name: *tenantName, Slug: *tenantSlug}
	}
	if rackID != nil {
		d.RackID = rackID
		d.Rack = &model.NestedRef{ID: *rackID, Name: *rackName}
	}
	return d, nil
}

func (s *DeviceService) Create(ctx context.Context, device *model.Device) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO devices (name, device_type_id, device_role_id, tenant_id, serial, asset_tag,
			site_id, rack_id, position, face, status, comments, custom_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
		 RETURNING id`,
		device.Name, device.DeviceTypeID, device.DeviceRoleID, device.TenantID,
		device.Serial, device.AssetTag, device.SiteID, device.RackID,
		device.Position, device.Face, device.Status, device.Comments, device.CustomFields,
	).Scan(&device.ID)
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

func (s *DeviceService) GetByID(ctx context.Context, id int64) (*model.Device, error) {
	row := s.db.QueryRow(ctx, `SELECT `+deviceColumns+deviceFrom+` WHERE d.id = $1`, id)
	d, err := scanDevice(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("device %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get device %d: %w", id, err)
	}
	return &d, nil
}

func (s *DeviceService) List(ctx context.Context, filter DeviceFilter, limit, offset int) ([]model.Device, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (d.name ILIKE $%d OR d.serial ILIKE $%d OR d.asset_tag ILIKE $%d)`,
			argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.SiteID != nil {
		where += fmt.Sprintf(` AND d.site_id = $%d`, argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}
	if filter.RackID != nil {
		where += fmt.Sprintf(` AND d.rack_id = $%d`, argIdx)
		args = append(args, *filter.RackID)
		argIdx++
	}
	if filter.RoleSlug != "" {
		where += fmt.Sprintf(` AND dr.slug = $%d`, argIdx)
		args = append(args, filter.RoleSlug)
		argIdx++
	}
	if filter.TenantSlug != "" {
		where += fmt.Sprintf(` AND t.slug = $%d`, argIdx)
		args = append(args, filter.TenantSlug)
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND d.status = $%d`, argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*)`+deviceFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count devices: %w", err)
	}

	query := `SELECT ` + deviceColumns + deviceFrom + where +
		fmt.Sprintf(` ORDER BY d.name NULLS LAST, d.id LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	devices := []model.Device{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan device: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate devices: %w", err)
	}

	return devices, total, nil
}

func (s *DeviceService) Update(ctx context.Context, device *model.Device) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE devices SET name = $1, device_type_id = $2, device_role_id = $3, tenant_id = $4,
			serial = $5, asset_tag = $6, site_id = $7, rack_id = $8, position = $9, face = $10,
			status = $11, comments = $12, custom_fields = $13, updated_at = now()
		 WHERE id = $14`,
		device.Name, device.DeviceTypeID, device.DeviceRoleID, device.TenantID,
		device.Serial, device.AssetTag, device.SiteID, device.RackID,
		device.Position, device.Face, device.Status, device.Comments, device.CustomFields,
		device.ID,
	)
	if err != nil {
		return fmt.Errorf("update device %d: %w", device.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("device %d: %w", device.ID, ErrNotFound)
	}
	return nil
}

func (s *DeviceService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM devices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete device %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("device %d: %w", id, ErrNotFound)
	}
	return nil
}
