package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type CircuitTerminationService struct {
	db DB
}

func NewCircuitTerminationService(db DB) *CircuitTerminationService {
	return &CircuitTerminationService{db: db}
}

type CircuitTerminationFilter struct {
	CircuitID *int64
	SiteID    *int64
}

const terminationColumns = `x.id,
	c.id, c.cid,
	x.term_side,
	s.id, s.name, s.slug,
	x.port_speed, x.upstream_speed, x.xconnect_id,
	x.created_at, x.updated_at`

const terminationFrom = ` FROM circuit_terminations x
	JOIN circuits c ON x.circuit_id = c.id
	JOIN sites s ON x.site_id = s.id`

func scanTermination(row interface{ Scan(dest ...any) error }) (model.CircuitTermination, error) {
	var term model.CircuitTermination
	var circuitID, siteID int64
	var circuitCID, siteName, siteSlug string
	err := row.Scan(&term.ID,
		&circuitID, &circuitCID,
		&term.TermSide,
		&siteID, &siteName, &siteSlug,
		&term.PortSpeed, &term.UpstreamSpeed, &term.XConnectID,
		&term.CreatedAt, &term.UpdatedAt)
	if err != nil {
		return model.CircuitTermination{}, err
	}
	term.CircuitID = circuitID
	term.Circuit = &model.NestedRef{ID: circuitID, Name: circuitCID}
	term.SiteID = siteID
	term.Site = &model.NestedRef{ID: siteID, Name: siteName, Slug: siteSlug}
	return term, nil
}

func (s *CircuitTerminationService) Create(ctx context.Context, term *model.CircuitTermination) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO circuit_terminations (circuit_id, term_side, site_id, port_speed,
			upstream_speed, xconnect_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now(), now()) RETURNING id`,
		term.CircuitID, term.TermSide, term.SiteID, term.PortSpeed,
		term.UpstreamSpeed, term.XConnectID,
	).Scan(&term.ID)
	if err != nil {
		return fmt.Errorf("create circuit termination: %w", err)
	}
	return nil
}

func (s *CircuitTerminationService) GetByID(ctx context.Context, id int64) (*model.CircuitTermination, error) {
	row := s.db.QueryRow(ctx, `SELECT `+terminationColumns+terminationFrom+` WHERE x.id = $1`, id)
	term, err := scanTermination(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("circuit termination %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get circuit termination %d: %w", id, err)
	}
	return &term, nil
}

func (s *CircuitTerminationService) List(ctx context.Context, filter CircuitTerminationFilter, limit, offset int) ([]model.CircuitTermination, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.CircuitID != nil {
		where += fmt.Sprintf(` AND x.circuit_id = $%d`, argIdx)
		args = append(args, *filter.CircuitID)
		argIdx++
	}
	if filter.SiteID != nil {
		where += fmt.Sprintf(` AND x.site_id = $%d`, argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*)`+terminationFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count circuit terminations: %w", err)
	}

	query := `SELECT ` + terminationColumns + terminationFrom + where +
		fmt.Sprintf(` ORDER BY c.cid, x.term_side LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list circuit terminations: %w", err)
	}
	defer rows.Close()

	terms := []model.CircuitTermination{}
	for rows.Next() {
		term, err := scanTermination(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan circuit termination: %w", err)
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate circuit terminations: %w", err)
	}

	return terms, total, nil
}

func (s *CircuitTerminationService) Update(ctx context.Context, term *model.CircuitTermination) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE circuit_terminations SET circuit_id = $1, term_side = $2, site_id = $3,
			port_speed = $4, upstream_speed = $5, xconnect_id = $6, updated_at = now()
		 WHERE id = $7`,
		term.CircuitID, term.TermSide, term.SiteID, term.PortSpeed,
		term.UpstreamSpeed, term.XConnectID, term.ID,
	)
	if err != nil {
		return fmt.Errorf("update circuit termination %d: %w", term.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("circuit termination %d: %w", term.ID, ErrNotFound)
	}
	return nil
}

func (s *CircuitTerminationService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM circuit_terminations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete circuit termination %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("circuit termination %d: %w", id, ErrNotFound)
	}
	return nil
}
