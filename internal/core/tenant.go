package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type TenantService struct {
	db DB
}

func NewTenantService(db DB) *TenantService {
	return &TenantService{db: db}
}

type TenantFilter struct {
	Search string
}

const tenantColumns = `id, name, slug, description, comments, custom_fields, created_at, updated_at`

func scanTenant(row interface{ Scan(dest ...any) error }) (model.Tenant, error) {
	var t model.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.Comments,
		&t.CustomFields, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (s *TenantService) Create(ctx context.Context, tenant *model.Tenant) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO tenants (name, slug, description, comments, custom_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now()) RETURNING id`,
		tenant.Name, tenant.Slug, tenant.Description, tenant.Comments, tenant.CustomFields,
	).Scan(&tenant.ID)
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

func (s *TenantService) GetByID(ctx context.Context, id int64) (*model.Tenant, error) {
	row := s.db.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	t, err := scanTenant(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("tenant %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get tenant %d: %w", id, err)
	}
	return &t, nil
}

func (s *TenantService) List(ctx context.Context, filter TenantFilter, limit, offset int) ([]model.Tenant, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM tenants`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenants: %w", err)
	}

	query := `SELECT ` + tenantColumns + ` FROM tenants` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []model.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tenants: %w", err)
	}

	return tenants, total, nil
}

func (s *TenantService) Update(ctx context.Context, tenant *model.Tenant) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE tenants SET name = $1, slug = $2, description = $3, comments = $4,
			custom_fields = $5, updated_at = now() WHERE id = $6`,
		tenant.Name, tenant.Slug, tenant.Description, tenant.Comments, tenant.CustomFields, tenant.ID,
	)
	if err != nil {
		return fmt.Errorf("update tenant %d: %w", tenant.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant %d: %w", tenant.ID, ErrNotFound)
	}
	return nil
}

func (s *TenantService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM tenants WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete tenant %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant %d: %w", id, ErrNotFound)
	}
	return nil
}
