package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type ManufacturerService struct {
	db DB
}

func NewManufacturerService(db DB) *ManufacturerService {
	return &ManufacturerService{db: db}
}

type ManufacturerFilter struct {
	Search string
}

func (s *ManufacturerService) Create(ctx context.Context, m *model.Manufacturer) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO manufacturers (name, slug, created_at, updated_at)
		 VALUES ($1, $2, now(), now()) RETURNING id`,
		m.Name, m.Slug,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create manufacturer: %w", err)
	}
	return nil
}

func (s *ManufacturerService) GetByID(ctx context.Context, id int64) (*model.Manufacturer, error) {
	var m model.Manufacturer
	err := s.db.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM manufacturers WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("manufacturer %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get manufacturer %d: %w", id, err)
	}
	return &m, nil
}

func (s *ManufacturerService) List(ctx context.Context, filter ManufacturerFilter, limit, offset int) ([]model.Manufacturer, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM manufacturers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count manufacturers: %w", err)
	}

	query := `SELECT id, name, slug, created_at, updated_at FROM manufacturers` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()

	manufacturers := []model.Manufacturer{}
	for rows.Next() {
		var m model.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan manufacturer: %w", err)
		}
		manufacturers = append(manufacturers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate manufacturers: %w", err)
	}

	return manufacturers, total, nil
}

func (s *ManufacturerService) Update(ctx context.Context, m *model.Manufacturer) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE manufacturers SET name = $1, slug = $2, updated_at = now() WHERE id = $3`,
		m.Name, m.Slug, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update manufacturer %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("manufacturer %d: %w", m.ID, ErrNotFound)
	}
	return nil
}

func (s *ManufacturerService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM manufacturers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete manufacturer %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("manufacturer %d: %w", id, ErrNotFound)
	}
	return nil
}
