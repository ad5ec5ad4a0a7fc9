package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type RegionService struct {
	db DB
}

func NewRegionService(db DB) *RegionService {
	return &RegionService{db: db}
}

// RegionFilter narrows region listings.
type RegionFilter struct {
	Search   string
	ParentID *int64
}

const regionColumns = `r.id, r.name, r.slug, p.id, p.name, p.slug, r.created_at, r.updated_at`

const regionFrom = ` FROM regions r LEFT JOIN regions p ON r.parent_id = p.id`

func scanRegion(row interface{ Scan(dest ...any) error }) (model.Region, error) {
	var reg model.Region
	var parentID *int64
	var parentName, parentSlug *string
	err := row.Scan(&reg.ID, &reg.Name, &reg.Slug, &parentID, &parentName, &parentSlug,
		&reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return model.Region{}, err
	}
	if parentID != nil {
		reg.ParentID = parentID
		reg.Parent = &model.NestedRef{ID: *parentID, Name: *parentName, Slug: *parentSlug}
	}
	return reg, nil
}

func (s *RegionService) Create(ctx context.Context, region *model.Region) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO regions (name, slug, parent_id, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now()) RETURNING id`,
		region.Name, region.Slug, region.ParentID,
	).Scan(&region.ID)
	if err != nil {
		return fmt.Errorf("create region: %w", err)
	}
	return nil
}

func (s *RegionService) GetByID(ctx context.Context, id int64) (*model.Region, error) {
	row := s.db.QueryRow(ctx, `SELECT `+regionColumns+regionFrom+` WHERE r.id = $1`, id)
	reg, err := scanRegion(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("region %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get region %d: %w", id, err)
	}
	return &reg, nil
}

func (s *RegionService) List(ctx context.Context, filter RegionFilter, limit, offset int) ([]model.Region, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND r.name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.ParentID != nil {
		where += fmt.Sprintf(` AND r.parent_id = $%d`, argIdx)
		args = append(args, *filter.ParentID)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM regions r`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count regions: %w", err)
	}

	query := `SELECT ` + regionColumns + regionFrom + where +
		fmt.Sprintf(` ORDER BY r.name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	regions := []model.Region{}
	for rows.Next() {
		reg, err := scanRegion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan region: %w", err)
		}
		regions = append(regions, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate regions: %w", err)
	}

	return regions, total, nil
}

func (s *RegionService) Update(ctx context.Context, region *model.Region) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE regions SET name = $1, slug = $2, parent_id = $3, updated_at = now() WHERE id = $4`,
		region.Name, region.Slug, region.ParentID, region.ID,
	)
	if err != nil {
		return fmt.Errorf("update region %d: %w", region.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("region %d: %w", region.ID, ErrNotFound)
	}
	return nil
}

func (s *RegionService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM regions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete region %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("region %d: %w", id, ErrNotFound)
	}
	return nil
}
