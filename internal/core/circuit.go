package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type CircuitService struct {
	db DB
}

func NewCircuitService(db DB) *CircuitService {
	return &CircuitService{db: db}
}

type CircuitFilter struct {
	Search       string
	ProviderSlug string
	TypeSlug     string
}

const circuitColumns = `c.id, c.cid,
	p.id, p.name, p.slug,
	ct.id, ct.name, ct.slug,
	t.id, t.name, t.slug,
	c.install_date, c.commit_rate, c.description, c.comments, c.custom_fields,
	c.created_at, c.updated_at`

const circuitFrom = ` FROM circuits c
	JOIN providers p ON c.provider_id = p.id
	JOIN circuit_types ct ON c.type_id = ct.id
	LEFT JOIN tenants t ON c.tenant_id = t.id`

func scanCircuit(row interface{ Scan(dest ...any) error }) (model.Circuit, error) {
	var c model.Circuit
	var providerID, typeID int64
	var providerName, providerSlug, typeName, typeSlug string
	var tenantID *int64
	var tenantName, tenantSlug *string
	err := row.Scan(&c.ID, &c.CID,
		&providerID, &providerName, &providerSlug,
		&typeID, &typeName, &typeSlug,
		&tenantID, &tenantName, &tenantSlug,
		&c.InstallDate, &c.CommitRate, &c.Description, &c.Comments, &c.CustomFields,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Circuit{}, err
	}
	c.ProviderID = providerID
	c.Provider = &model.NestedRef{ID: providerID, Name: providerName, Slug: providerSlug}
	c.TypeID = typeID
	c.Type = &model.NestedRef{ID: typeID, Name: typeName, Slug: typeSlug}
	if tenantID != nil {
		c.TenantID = tenantID
		c.Tenant = &model.NestedRef{ID: *tenantID, Name: *tenantName, Slug: *tenantSlug}
	}
	return c, nil
}

func (s *CircuitService) Create(ctx context.Context, circuit *model.Circuit) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO circuits (cid, provider_id, type_id, tenant_id, install_date, commit_rate,
			description, comments, custom_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now()) RETURNING id`,
		circuit.CID, circuit.ProviderID, circuit.TypeID, circuit.TenantID,
		circuit.InstallDate, circuit.CommitRate, circuit.Description, circuit.Comments,
		circuit.CustomFields,
	).Scan(&circuit.ID)
	if err != nil {
		return fmt.Errorf("create circuit: %w", err)
	}
	return nil
}

func (s *CircuitService) GetByID(ctx context.Context, id int64) (*model.Circuit, error) {
	row := s.db.QueryRow(ctx, `SELECT `+circuitColumns+circuitFrom+` WHERE c.id = $1`, id)
	c, err := scanCircuit(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("circuit %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get circuit %d: %w", id, err)
	}
	return &c, nil
}

func (s *CircuitService) List(ctx context.Context, filter CircuitFilter, limit, offset int) ([]model.Circuit, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (c.cid ILIKE $%d OR c.description ILIKE $%d)`, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.ProviderSlug != "" {
		where += fmt.Sprintf(` AND p.slug = $%d`, argIdx)
		args = append(args, filter.ProviderSlug)
		argIdx++
	}
	if filter.TypeSlug != "" {
		where += fmt.Sprintf(` AND ct.slug = $%d`, argIdx)
		args = append(args, filter.TypeSlug)
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*)`+circuitFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count circuits: %w", err)
	}

	query := `SELECT ` + circuitColumns + circuitFrom + where +
		fmt.Sprintf(` ORDER BY p.name, c.cid LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list circuits: %w", err)
	}
	defer rows.Close()

	circuits := []model.Circuit{}
	for rows.Next() {
		c, err := scanCircuit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan circuit: %w", err)
		}
		circuits = append(circuits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate circuits: %w", err)
	}

	return circuits, total, nil
}

func (s *CircuitService) Update(ctx context.Context, circuit *model.Circuit) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE circuits SET cid = $1, provider_id = $2, type_id = $3, tenant_id = $4,
			install_date = $5, commit_rate = $6, description = $7, comments = $8,
			custom_fields = $9, updated_at = now()
		 WHERE id = $10`,
		circuit.CID, circuit.ProviderID, circuit.TypeID, circuit.TenantID,
		circuit.InstallDate, circuit.CommitRate, circuit.Description, circuit.Comments,
		circuit.CustomFields, circuit.ID,
	)
	if err != nil {
		return fmt.Errorf("update circuit %d: %w", circuit.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("circuit %d: %w", circuit.ID, ErrNotFound)
	}
	return nil
}

func (s *CircuitService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM circuits WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete circuit %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("circuit %d: %w", id, ErrNotFound)
	}
	return nil
}
