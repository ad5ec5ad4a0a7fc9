package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type RackRoleService struct {
	db DB
}

func NewRackRoleService(db DB) *RackRoleService {
	return &RackRoleService{db: db}
}

type RackRoleFilter struct {
	Search string
}

func (s *RackRoleService) Create(ctx context.Context, role *model.RackRole) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO rack_roles (name, slug, color, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now()) RETURNING id`,
		role.Name, role.Slug, role.Color,
	).Scan(&role.ID)
	if err != nil {
		return fmt.Errorf("create rack role: %w", err)
	}
	return nil
}

func (s *RackRoleService) GetByID(ctx context.Context, id int64) (*model.RackRole, error) {
	var role model.RackRole
	err := s.db.QueryRow(ctx,
		`SELECT id, name, slug, color, created_at, updated_at FROM rack_roles WHERE id = $1`, id,
	).Scan(&role.ID, &role.Name, &role.Slug, &role.Color, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("rack role %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get rack role %d: %w", id, err)
	}
	return &role, nil
}

func (s *RackRoleService) List(ctx context.Context, filter RackRoleFilter, limit, offset int) ([]model.RackRole, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM rack_roles`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rack roles: %w", err)
	}

	query := `SELECT id, name, slug, color, created_at, updated_at FROM rack_roles` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rack roles: %w", err)
	}
	defer rows.Close()

	roles := []model.RackRole{}
	for rows.Next() {
		var role model.RackRole
		if err := rows.Scan(&role.ID, &role.Name, &role.Slug, &role.Color,
			&role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan rack role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rack roles: %w", err)
	}

	return roles, total, nil
}

func (s *RackRoleService) Update(ctx context.Context, role *model.RackRole) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE rack_roles SET name = $1, slug = $2, color = $3, updated_at = now() WHERE id = $4`,
		role.Name, role.Slug, role.Color, role.ID,
	)
	if err != nil {
		return fmt.Errorf("update rack role %d: %w", role.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rack role %d: %w", role.ID, ErrNotFound)
	}
	return nil
}

func (s *RackRoleService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM rack_roles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete rack role %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rack role %d: %w", id, ErrNotFound)
	}
	return nil
}
