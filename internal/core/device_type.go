package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type DeviceTypeService struct {
	db DB
}

func NewDeviceTypeService(db DB) *DeviceTypeService {
	return &DeviceTypeService{db: db}
}

type DeviceTypeFilter struct {
	Search           string
	ManufacturerSlug string
}

const deviceTypeColumns = `dt.id,
	m.id, m.name, m.slug,
	dt.model, dt.slug, dt.part_number, dt.u_height, dt.is_full_depth,
	dt.comments, dt.custom_fields, dt.created_at, dt.updated_at`

const deviceTypeFrom = ` FROM device_types dt
	JOIN manufacturers m ON dt.manufacturer_id = m.id`

func scanDeviceType(row interface{ Scan(dest ...any) error }) (model.DeviceType, error) {
	var dt model.DeviceType
	var mfrID int64
	var mfrName, mfrSlug string
	err := row.Scan(&dt.ID,
		&mfrID, &mfrName, &mfrSlug,
		&dt.Model, &dt.Slug, &dt.PartNumber, &dt.UHeight, &dt.IsFullDepth,
		&dt.Comments, &dt.CustomFields, &dt.CreatedAt, &dt.UpdatedAt)
	if err != nil {
		return model.DeviceType{}, err
	}
	dt.ManufacturerID = mfrID
	dt.Manufacturer = &model.NestedRef{ID: mfrID, Name: mfrName, Slug: mfrSlug}
	return dt, nil
}

func (s *DeviceTypeService) Create(ctx context.Context, dt *model.DeviceType) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO device_types (manufacturer_id, model, slug, part_number, u_height,
			is_full_depth, comments, custom_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now()) RETURNING id`,
		dt.ManufacturerID, dt.Model, dt.Slug, dt.PartNumber, dt.UHeight,
		dt.IsFullDepth, dt.Comments, dt.CustomFields,
	).Scan(&dt.ID)
	if err != nil {
		return fmt.Errorf("create device type: %w", err)
	}
	return nil
}

func (s *DeviceTypeService) GetByID(ctx context.Context, id int64) (*model.DeviceType, error) {
	row := s.db.QueryRow(ctx, `SELECT `+deviceTypeColumns+deviceTypeFrom+` WHERE dt.id = $1`, id)
	dt, err := scanDeviceType(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("device type %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get device type %d: %w", id, err)
	}
	return &dt, nil
}

func (s *DeviceTypeService) List(ctx context.Context, filter DeviceTypeFilter, limit, offset int) ([]model.DeviceType, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (dt.model ILIKE $%d OR dt.part_number ILIKE $%d)`, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.ManufacturerSlug != "" {
		where += fmt.Sprintf(` AND m.slug = $%d`, argIdx)
		args = append(args, filter.ManufacturerSlug)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*)`+deviceTypeFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count device types: %w", err)
	}

	query := `SELECT ` + deviceTypeColumns + deviceTypeFrom + where +
		fmt.Sprintf(` ORDER BY m.name, dt.model LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list device types: %w", err)
	}
	defer rows.Close()

	types := []model.DeviceType{}
	for rows.Next() {
		dt, err := scanDeviceType(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan device type: %w", err)
		}
		types = append(types, dt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate device types: %w", err)
	}

	return types, total, nil
}

func (s *DeviceTypeService) Update(ctx context.Context, dt *model.DeviceType) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE device_types SET manufacturer_id = $1, model = $2, slug = $3, part_number = $4,
			u_height = $5, is_full_depth = $6, comments = $7, custom_fields = $8, updated_at = now()
		 WHERE id = $9`,
		dt.ManufacturerID, dt.Model, dt.Slug, dt.PartNumber, dt.UHeight,
		dt.IsFullDepth, dt.Comments, dt.CustomFields, dt.ID,
	)
	if err != nil {
		return fmt.Errorf("update device type %d: %w", dt.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("device type %d: %w", dt.ID, ErrNotFound)
	}
	return nil
}

func (s *DeviceTypeService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM device_types WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete device type %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("device type %d: %w", id, ErrNotFound)
	}
	return nil
}
