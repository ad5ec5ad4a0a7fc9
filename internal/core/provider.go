package core

import (
	"context"
	"fmt"

	"github.com/torvik/inventory/internal/model"
)

type ProviderService struct {
	db DB
}

func NewProviderService(db DB) *ProviderService {
	return &ProviderService{db: db}
}

type ProviderFilter struct {
	Search string
}

const providerColumns = `id, name, slug, asn, account, portal_url, noc_contact,
	admin_contact, comments, custom_fields, created_at, updated_at`

func scanProvider(row interface{ Scan(dest ...any) error }) (model.Provider, error) {
	var p model.Provider
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.ASN, &p.Account, &p.PortalURL,
		&p.NOCContact, &p.AdminContact, &p.Comments, &p.CustomFields,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *ProviderService) Create(ctx context.Context, provider *model.Provider) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO providers (name, slug, asn, account, portal_url, noc_contact,
			admin_contact, comments, custom_fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now()) RETURNING id`,
		provider.Name, provider.Slug, provider.ASN, provider.Account, provider.PortalURL,
		provider.NOCContact, provider.AdminContact, provider.Comments, provider.CustomFields,
	).Scan(&provider.ID)
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	return nil
}

func (s *ProviderService) GetByID(ctx context.Context, id int64) (*model.Provider, error) {
	row := s.db.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = $1`, id)
	p, err := scanProvider(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("provider %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get provider %d: %w", id, err)
	}
	return &p, nil
}

func (s *ProviderService) List(ctx context.Context, filter ProviderFilter, limit, offset int) ([]model.Provider, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM providers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count providers: %w", err)
	}

	query := `SELECT ` + providerColumns + ` FROM providers` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	providers := []model.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan provider: %w", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate providers: %w", err)
	}

	return providers, total, nil
}

func (s *ProviderService) Update(ctx context.Context, provider *model.Provider) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE providers SET name = $1, slug = $2, asn = $3, account = $4, portal_url = $5,
			noc_contact = $6, admin_contact = $7, comments = $8, custom_fields = $9,
			updated_at = now()
		 WHERE id = $10`,
		provider.Name, provider.Slug, provider.ASN, provider.Account, provider.PortalURL,
		provider.NOCContact, provider.AdminContact, provider.Comments, provider.CustomFields,
		provider.ID,
	)
	if err != nil {
		return fmt.Errorf("update provider %d: %w", provider.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("provider %d: %w", provider.ID, ErrNotFound)
	}
	return nil
}

func (s *ProviderService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM providers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete provider %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("provider %d: %w", id, ErrNotFound)
	}
	return nil
}
