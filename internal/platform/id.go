package platform

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

const tokenKeyBytes = 20

func NewID() string {
	return uuid.New().String()
}

// NewTokenKey returns a random 40-character hex token key.
func NewTokenKey() (string, error) {
	b := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
