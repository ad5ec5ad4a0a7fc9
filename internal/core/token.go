package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/torvik/inventory/internal/model"
	"github.com/torvik/inventory/internal/platform"
)

// TokenService manages API token operations against the core database.
type TokenService struct {
	db DB
}

// NewTokenService creates a new TokenService.
func NewTokenService(db DB) *TokenService {
	return &TokenService{db: db}
}

// Create generates a new token, stores the key hash, and returns the model
// along with the raw key string. The raw key must be shown to the caller
// exactly once.
func (s *TokenService) Create(ctx context.Context, name string, writeEnabled bool) (*model.Token, string, error) {
	rawKey, err := platform.NewTokenKey()
	if err != nil {
		return nil, "", fmt.Errorf("generate token key: %w", err)
	}
	return s.createWithKey(ctx, name, rawKey, writeEnabled)
}

// CreateWithRawKey stores a token with a caller-provided raw key value.
// Used for well-known dev/test keys where the raw value must be deterministic.
func (s *TokenService) CreateWithRawKey(ctx context.Context, name, rawKey string, writeEnabled bool) (*model.Token, error) {
	token, _, err := s.createWithKey(ctx, name, rawKey, writeEnabled)
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *TokenService) createWithKey(ctx context.Context, name, rawKey string, writeEnabled bool) (*model.Token, string, error) {
	if len(rawKey) < 8 {
		return nil, "", fmt.Errorf("token key too short")
	}

	id := platform.NewID()

	hash := sha256.Sum256([]byte(rawKey))
	keyHash := hex.EncodeToString(hash[:])
	keyPrefix := rawKey[:8]

	_, err := s.db.Exec(ctx,
		`INSERT INTO tokens (id, name, key_hash, key_prefix, write_enabled, created_at)
		 VALUES ($1, $2, $3, $4, $5, now())`,
		id, name, keyHash, keyPrefix, writeEnabled,
	)
	if err != nil {
		return nil, "", fmt.Errorf("insert token: %w", err)
	}

	token := &model.Token{
		ID:           id,
		Name:         name,
		KeyPrefix:    keyPrefix,
		WriteEnabled: writeEnabled,
	}
	// Fetch the server-generated created_at.
	err = s.db.QueryRow(ctx, "SELECT created_at FROM tokens WHERE id = $1", id).Scan(&token.CreatedAt)
	if err != nil {
		return nil, "", fmt.Errorf("get token created_at: %w", err)
	}

	return token, rawKey, nil
}

// GetByID retrieves a token by its ID.
func (s *TokenService) GetByID(ctx context.Context, id string) (*model.Token, error) {
	var t model.Token
	err := s.db.QueryRow(ctx,
		`SELECT id, name, key_prefix, write_enabled, created_at, expires_at, revoked_at
		 FROM tokens WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.KeyPrefix, &t.WriteEnabled, &t.CreatedAt, &t.ExpiresAt, &t.RevokedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("token %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get token %s: %w", id, err)
	}
	return &t, nil
}

// Authenticate looks up an active token by its raw key. Revoked and expired
// tokens do not match.
func (s *TokenService) Authenticate(ctx context.Context, rawKey string) (*model.Token, error) {
	hash := sha256.Sum256([]byte(rawKey))
	keyHash := hex.EncodeToString(hash[:])

	var t model.Token
	err := s.db.QueryRow(ctx,
		`SELECT id, name, key_prefix, write_enabled, created_at, expires_at, revoked_at
		 FROM tokens
		 WHERE key_hash = $1 AND revoked_at IS NULL
		   AND (expires_at IS NULL OR expires_at > now())`, keyHash,
	).Scan(&t.ID, &t.Name, &t.KeyPrefix, &t.WriteEnabled, &t.CreatedAt, &t.ExpiresAt, &t.RevokedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("authenticate token: %w", err)
	}
	return &t, nil
}

// List retrieves tokens, newest first.
func (s *TokenService) List(ctx context.Context, limit, offset int) ([]model.Token, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM tokens`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tokens: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, name, key_prefix, write_enabled, created_at, expires_at, revoked_at
		 FROM tokens ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tokens: %w", err)
	}
	defer rows.Close()

	tokens := []model.Token{}
	for rows.Next() {
		var t model.Token
		if err := rows.Scan(&t.ID, &t.Name, &t.KeyPrefix, &t.WriteEnabled, &t.CreatedAt, &t.ExpiresAt, &t.RevokedAt); err != nil {
			return nil, 0, fmt.Errorf("scan token: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tokens: %w", err)
	}

	return tokens, total, nil
}

// Revoke soft-deletes a token by setting revoked_at.
func (s *TokenService) Revoke(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE tokens SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL", id,
	)
	if err != nil {
		return fmt.Errorf("revoke token %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("token %s: %w", id, ErrNotFound)
	}
	return nil
}
