package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type DeviceRoleService struct {
	db DB
}

func NewDeviceRoleService(db DB) *DeviceRoleService {
	return &DeviceRoleService{db: db}
}

type DeviceRoleFilter struct {
	Search string
}

func (s *DeviceRoleService) Create(ctx context.Context, role *model.DeviceRole) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO device_roles (name, slug, color, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now()) RETURNING id`,
		role.Name, role.Slug, role.Color,
	).Scan(&role.ID)
	if err != nil {
		return fmt.Errorf("create device role: %w", err)
	}
	return nil
}

func (s *DeviceRoleService) GetByID(ctx context.Context, id int64) (*model.DeviceRole, error) {
	var role model.DeviceRole
	err := s.db.QueryRow(ctx,
		`SELECT id, name, slug, color, created_at, updated_at FROM device_roles WHERE id = $1`, id,
	).Scan(&role.ID, &role.Name, &role.Slug, &role.Color, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("device role %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get device role %d: %w", id, err)
	}
	return &role, nil
}

func (s *DeviceRoleService) List(ctx context.Context, filter DeviceRoleFilter, limit, offset int) ([]model.DeviceRole, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM device_roles`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count device roles: %w", err)
	}

	query := `SELECT id, name, slug, color, created_at, updated_at FROM device_roles` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list device roles: %w", err)
	}
	defer rows.Close()

	roles := []model.DeviceRole{}
	for rows.Next() {
		var role model.DeviceRole
		if err := rows.Scan(&role.ID, &role.Name, &role.Slug, &role.Color,
			&role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan device role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate device roles: %w", err)
	}

	return roles, total, nil
}

func (s *DeviceRoleService) Update(ctx context.Context, role *model.DeviceRole) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE device_roles SET name = $1, slug = $2, color = $3, updated_at = now() WHERE id = $4`,
		role.Name, role.Slug, role.Color, role.ID,
	)
	if err != nil {
		return fmt.Errorf("update device role %d: %w", role.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("device role %d: %w", role.ID, ErrNotFound)
	}
	return nil
}

func (s *DeviceRoleService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM device_roles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete device role %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("device role %d: %w", id, ErrNotFound)
	}
	return nil
}
