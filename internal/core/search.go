package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SearchResult represents a single search result across resource types.
type SearchResult struct {
	Type  string `json:"type"`
	ID    int64  `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// SearchService provides cross-resource search.
type SearchService struct {
	db DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db DB) *SearchService {
	return &SearchService{db: db}
}

// Search runs parallel queries across resource tables and returns matching results.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + query + "%"

	type queryDef struct {
		sql  string
		args []any
	}

	queries := []queryDef{
		{
			sql: `SELECT 'dcim.site', id, name, '/api/dcim/sites/' || id || '/' FROM sites
				WHERE name ILIKE $1 OR slug ILIKE $1 OR facility ILIKE $1
				LIMIT $2`,
			args: []any{pattern, limit},
		},
		{
			sql: `SELECT 'dcim.rack', id, name, '/api/dcim/racks/' || id || '/' FROM racks
				WHERE name ILIKE $1 OR facility_id ILIKE $1
				LIMIT $2`,
			args: []any{pattern, limit},
		},
		{
			sql: `SELECT 'dcim.device', id, COALESCE(name, '{' || id || '}'), '/api/dcim/devices/' || id || '/' FROM devices
				WHERE name ILIKE $1 OR serial ILIKE $1 OR asset_tag ILIKE $1
				LIMIT $2`,
			args: []any{pattern, limit},
		},
		{
			sql: `SELECT 'ipam.prefix', id, prefix::text, '/api/ipam/prefixes/' || id || '/' FROM prefixes
				WHERE prefix::text ILIKE $1 OR description ILIKE $1
				LIMIT $2`,
			args: []any{pattern, limit},
		},
		{
			sql: `SELECT 'ipam.vlan', id, name, '/api/ipam/vlans/' || id || '/' FROM vlans
				WHERE name ILIKE $1 OR vid::text = $3
				LIMIT $2`,
			args: []any{pattern, limit, query},
		},
		{
			sql: `SELECT 'circuits.circuit', id, cid, '/api/circuits/circuits/' || id || '/' FROM circuits
				WHERE cid ILIKE $1 OR description ILIKE $1
				LIMIT $2`,
			args: []any{pattern, limit},
		},
		{
			sql: `SELECT 'tenancy.tenant', id, name, '/api/tenancy/tenants/' || id || '/' FROM tenants
				WHERE name ILIKE $1 OR slug ILIKE $1
				LIMIT $2`,
			args: []any{pattern, limit},
		},
		{
			sql: `SELECT 'circuits.provider', id, name, '/api/circuits/providers/' || id || '/' FROM providers
				WHERE name ILIKE $1 OR slug ILIKE $1
				LIMIT $2`,
			args: []any{pattern, limit},
		},
	}

	results := make([][]SearchResult, len(queries))
	g, ctx := errgroup.WithContext(ctx)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			rows, err := s.db.Query(ctx, q.sql, q.args...)
			if err != nil {
				return fmt.Errorf("search query %d: %w", i, err)
			}
			defer rows.Close()

			for rows.Next() {
				var r SearchResult
				if err := rows.Scan(&r.Type, &r.ID, &r.Label, &r.URL); err != nil {
					return fmt.Errorf("scan search result: %w", err)
				}
				results[i] = append(results[i], r)
			}
			return rows.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	all := []SearchResult{}
	for _, batch := range results {
		all = append(all, batch...)
	}
	return all, nil
}
