package model

import "time"

// Token is an API credential. Only the SHA-256 hash of the key is stored;
// KeyPrefix identifies the token in listings without revealing the key.
type Token struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	KeyPrefix    string     `json:"key_prefix"`
	WriteEnabled bool       `json:"write_enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
	RevokedAt    *time.Time `json:"revoked_at"`
}
