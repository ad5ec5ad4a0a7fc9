package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type CircuitTypeService struct {
	db DB
}

func NewCircuitTypeService(db DB) *CircuitTypeService {
	return &CircuitTypeService{db: db}
}

type CircuitTypeFilter struct {
	Search string
}

func (s *CircuitTypeService) Create(ctx context.Context, ct *model.CircuitType) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO circuit_types (name, slug, created_at, updated_at)
		 VALUES ($1, $2, now(), now()) RETURNING id`,
		ct.Name, ct.Slug,
	).Scan(&ct.ID)
	if err != nil {
		return fmt.Errorf("create circuit type: %w", err)
	}
	return nil
}

func (s *CircuitTypeService) GetByID(ctx context.Context, id int64) (*model.CircuitType, error) {
	var ct model.CircuitType
	err := s.db.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM circuit_types WHERE id = $1`, id,
	).Scan(&ct.ID, &ct.Name, &ct.Slug, &ct.CreatedAt, &ct.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("circuit type %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get circuit type %d: %w", id, err)
	}
	return &ct, nil
}

func (s *CircuitTypeService) List(ctx context.Context, filter CircuitTypeFilter, limit, offset int) ([]model.CircuitType, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM circuit_types`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count circuit types: %w", err)
	}

	query := `SELECT id, name, slug, created_at, updated_at FROM circuit_types` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list circuit types: %w", err)
	}
	defer rows.Close()

	types := []model.CircuitType{}
	for rows.Next() {
		var ct model.CircuitType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Slug, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan circuit type: %w", err)
		}
		types = append(types, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate circuit types: %w", err)
	}

	return types, total, nil
}

func (s *CircuitTypeService) Update(ctx context.Context, ct *model.CircuitType) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE circuit_types SET name = $1, slug = $2, updated_at = now() WHERE id = $3`,
		ct.Name, ct.Slug, ct.ID,
	)
	if err != nil {
		return fmt.Errorf("update circuit type %d: %w", ct.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("circuit type %d: %w", ct.ID, ErrNotFound)
	}
	return nil
}

func (s *CircuitTypeService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM circuit_types WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete circuit type %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("circuit type %d: %w", id, ErrNotFound)
	}
	return nil
}
